// Package twelvedata implements the financial-data contract against the
// TwelveData HTTP API. Only insider transactions are served by the vendor;
// the other capabilities return empty results.
package twelvedata

import (
	"context"
	"log"
	"net/url"
	"time"

	"github.com/cecil-the-coder/trading-provider-kit/internal/httpx"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

const defaultBaseURL = "https://api.twelvedata.com"

// Free-tier credit limit is 8 requests per minute; stay under it.
const requestsPerSecond = 0.13

// Config is the settings payload recognized by the provider.
type Config struct {
	DataDir string `mapstructure:"data_dir"`
	APIKey  string `mapstructure:"twelvedata_api_key"`
	BaseURL string `mapstructure:"twelvedata_base_url"`
}

// TwelveDataProvider queries the TwelveData API. Construction succeeds
// without an API key; the provider then reports itself unavailable and
// queries yield empty results.
type TwelveDataProvider struct {
	dataDir string
	apiKey  string
	client  *httpx.Client
	logger  *log.Logger
}

// New constructs a provider from an opaque settings payload.
func New(cfg types.Settings) (*TwelveDataProvider, error) {
	var c Config
	if err := cfg.Decode(&c); err != nil {
		return nil, err
	}
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &TwelveDataProvider{
		dataDir: c.DataDir,
		apiKey:  c.APIKey,
		client: httpx.New(httpx.Config{
			BaseURL:           baseURL,
			Timeout:           15 * time.Second,
			RequestsPerSecond: requestsPerSecond,
			Burst:             8,
		}),
		logger: log.Default(),
	}, nil
}

// DataDir returns the storage location the provider was constructed with.
// TwelveData serves data over HTTP; the directory is carried for parity with
// file-backed providers and local caching layers built on top.
func (p *TwelveDataProvider) DataDir() string {
	return p.dataDir
}

// ProviderName returns the short diagnostic name, "twelvedata".
func (p *TwelveDataProvider) ProviderName() string {
	return types.DeriveProviderName(p)
}

// IsAvailable reports whether an API key is configured.
func (p *TwelveDataProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// GetNews returns an empty result: TwelveData does not offer a news feed.
func (p *TwelveDataProvider) GetNews(ctx context.Context, ticker, startDate, endDate string) (types.DateRecords, error) {
	if err := types.ValidateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	return types.DateRecords{}, nil
}

// GetInsiderSentiment returns an empty result: TwelveData does not offer
// insider sentiment.
func (p *TwelveDataProvider) GetInsiderSentiment(ctx context.Context, ticker, startDate, endDate string) (types.DateRecords, error) {
	if err := types.ValidateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	return types.DateRecords{}, nil
}

type insiderTransactionsResponse struct {
	InsiderTransactions []types.Record `json:"insider_transactions"`
}

// GetInsiderTransactions queries the vendor's insider_transactions endpoint
// and groups the records by their reported date, filtered to the inclusive
// range. API failures degrade to an empty result.
func (p *TwelveDataProvider) GetInsiderTransactions(ctx context.Context, ticker, startDate, endDate string) (types.DateRecords, error) {
	if err := types.ValidateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	if p.apiKey == "" {
		return types.DateRecords{}, nil
	}

	query := url.Values{}
	query.Set("symbol", ticker)
	query.Set("apikey", p.apiKey)

	var resp insiderTransactionsResponse
	if err := p.client.GetJSON(ctx, "/insider_transactions", query, &resp); err != nil {
		if p.logger != nil {
			p.logger.Printf("twelvedata: insider transactions for %s: %v", ticker, err)
		}
		return types.DateRecords{}, nil
	}

	grouped := types.DateRecords{}
	for _, record := range resp.InsiderTransactions {
		date := recordDate(record)
		if date >= startDate && date <= endDate && date != "" {
			grouped[date] = append(grouped[date], record)
		}
	}
	return grouped, nil
}

// recordDate extracts the record's date, tolerating the field names the
// vendor has used across API revisions.
func recordDate(record types.Record) string {
	for _, key := range []string{"date_reported", "date", "filing_date"} {
		if v, ok := record[key].(string); ok && v != "" {
			if len(v) > len(types.DateLayout) {
				v = v[:len(types.DateLayout)]
			}
			return v
		}
	}
	return ""
}
