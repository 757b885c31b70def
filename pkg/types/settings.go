package types

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Settings is the opaque key-value configuration payload passed to provider
// constructors. The registries pass it through unmodified; only the keys a
// concrete provider documents are interpreted, by that provider alone.
type Settings map[string]any

// GetString returns the string value for key, or def when the key is absent
// or holds a non-string value.
func (s Settings) GetString(key, def string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return def
}

// GetBool returns the bool value for key, or def when the key is absent or
// holds a non-bool value.
func (s Settings) GetBool(key string, def bool) bool {
	if v, ok := s[key].(bool); ok {
		return v
	}
	return def
}

// GetInt returns the int value for key, or def when the key is absent or not
// an integer-valued number.
func (s Settings) GetInt(key string, def int) int {
	switch v := s[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Clone returns an independent shallow copy of the settings map. A nil
// receiver yields an empty, non-nil map.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Decode unpacks the settings into a typed configuration struct using
// mapstructure tags. Weakly typed input is accepted so values round-tripped
// through YAML or JSON decode cleanly.
func (s Settings) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("settings decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(s)); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	return nil
}
