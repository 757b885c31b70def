package dataflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/trading-provider-kit/internal/testutil"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/config"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/dataflows/finnhub"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/dataflows/twelvedata"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

func TestFactory_GetProvider_DefaultIsFinnhub(t *testing.T) {
	factory := NewFactory(config.New())

	provider, err := factory.GetProvider("", nil)
	require.NoError(t, err)
	assert.IsType(t, &finnhub.FinnhubProvider{}, provider)
}

func TestFactory_GetProvider_NilStoreUsesDefaults(t *testing.T) {
	factory := NewFactory(nil)

	provider, err := factory.GetProvider("", nil)
	require.NoError(t, err)
	assert.IsType(t, &finnhub.FinnhubProvider{}, provider)
}

func TestFactory_GetProvider_ConfigSelectsProviderAndDataDir(t *testing.T) {
	store := config.New()
	store.Set(map[string]any{
		config.KeyDataProvider: "twelvedata",
		config.KeyDataDir:      "/tmp/x",
	})
	factory := NewFactory(store)

	provider, err := factory.GetProvider("", nil)
	require.NoError(t, err)

	twelve, ok := provider.(*twelvedata.TwelveDataProvider)
	require.True(t, ok, "expected a TwelveData instance, got %T", provider)
	assert.Equal(t, "/tmp/x", twelve.DataDir())
}

func TestFactory_GetProvider_ExplicitNameOverridesConfig(t *testing.T) {
	store := config.New()
	store.Set(map[string]any{config.KeyDataProvider: "twelvedata"})
	factory := NewFactory(store)

	provider, err := factory.GetProvider("finnhub", nil)
	require.NoError(t, err)
	assert.IsType(t, &finnhub.FinnhubProvider{}, provider)
}

func TestFactory_GetProviderAt_ExplicitDirOverridesConfig(t *testing.T) {
	store := config.New()
	store.Set(map[string]any{config.KeyDataDir: "/tmp/default"})
	factory := NewFactory(store)

	provider, err := factory.GetProviderAt("finnhub", "/tmp/custom")
	require.NoError(t, err)

	fh, ok := provider.(*finnhub.FinnhubProvider)
	require.True(t, ok)
	assert.Equal(t, "/tmp/custom", fh.DataDir())
}

func TestFactory_GetProvider_NameVariantsResolveSameType(t *testing.T) {
	factory := NewFactory(config.New())

	reference, err := factory.GetProvider("finnhub", nil)
	require.NoError(t, err)

	for _, variant := range []string{"FINNHUB", "  finnhub  ", " FiNnHuB\t"} {
		provider, err := factory.GetProvider(variant, nil)
		require.NoError(t, err, "variant %q", variant)
		assert.IsType(t, reference, provider, "variant %q", variant)
	}
}

func TestFactory_GetProvider_Unknown(t *testing.T) {
	factory := NewFactory(config.New())

	_, err := factory.GetProvider("doesnotexist", nil)
	require.Error(t, err)

	var unknown *types.UnknownProviderError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, unknown.Registered, "finnhub")
	assert.Contains(t, unknown.Registered, "twelvedata")
	assert.Contains(t, err.Error(), "finnhub")
}

func TestFactory_RegisterProvider_CustomRoundTrip(t *testing.T) {
	factory := NewFactory(config.New())

	require.NoError(t, factory.RegisterProvider("custom", testutil.NewMockDataProvider))
	assert.Contains(t, factory.ListProviders(), "custom")

	provider, err := factory.GetProvider("custom", types.Settings{"data_dir": "/tmp/y"})
	require.NoError(t, err)

	mock, ok := provider.(*testutil.MockDataProvider)
	require.True(t, ok)
	assert.Equal(t, "/tmp/y", mock.Settings.GetString("data_dir", ""))
}

func TestFactory_RegisterProvider_Invalid(t *testing.T) {
	factory := NewFactory(config.New())
	before := factory.ListProviders()

	err := factory.RegisterProvider("bad", struct{ X int }{})
	require.Error(t, err)

	var invalid *types.InvalidProviderError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, before, factory.ListProviders())
}

func TestFactory_RegisterProvider_OverridesBuiltin(t *testing.T) {
	factory := NewFactory(config.New())

	require.NoError(t, factory.RegisterProvider("finnhub", testutil.NewMockDataProvider))

	provider, err := factory.GetProvider("finnhub", nil)
	require.NoError(t, err)
	assert.IsType(t, &testutil.MockDataProvider{}, provider)
}

func TestFactory_Register_LastWriteWins(t *testing.T) {
	factory := NewFactory(config.New())

	factory.Register("custom", func(cfg types.Settings) (types.DataProvider, error) {
		return &testutil.MockDataProvider{Name: "first"}, nil
	})
	factory.Register("custom", func(cfg types.Settings) (types.DataProvider, error) {
		return &testutil.MockDataProvider{Name: "second"}, nil
	})

	provider, err := factory.GetProvider("custom", nil)
	require.NoError(t, err)
	assert.Equal(t, "second", provider.ProviderName())
}

func TestFactory_ListProviders(t *testing.T) {
	factory := NewFactory(config.New())
	assert.Equal(t, []string{"finnhub", "twelvedata"}, factory.ListProviders())
}

func TestFactory_IsolatedRegistries(t *testing.T) {
	first := NewFactory(config.New())
	second := NewFactory(config.New())

	require.NoError(t, first.RegisterProvider("custom", testutil.NewMockDataProvider))

	assert.Contains(t, first.ListProviders(), "custom")
	assert.NotContains(t, second.ListProviders(), "custom")
}
