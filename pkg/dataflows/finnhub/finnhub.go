// Package finnhub implements the financial-data contract on top of locally
// stored Finnhub exports. Data lives under
// <data_dir>/finnhub_data/<data_type>/<TICKER>_data_formatted.json as a JSON
// object keyed by YYYY-MM-DD date.
package finnhub

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

// Data type directory names inside finnhub_data.
const (
	newsData     = "news_data"
	insiderSenti = "insider_senti"
	insiderTrans = "insider_trans"
)

// Config is the settings payload recognized by the provider.
type Config struct {
	DataDir string `mapstructure:"data_dir"`
}

// FinnhubProvider serves finnhub data from disk. An empty data_dir is
// accepted; the provider then reports itself unavailable and every query
// yields an empty result.
type FinnhubProvider struct {
	dataDir string
	logger  *log.Logger
}

// New constructs a provider from an opaque settings payload.
func New(cfg types.Settings) (*FinnhubProvider, error) {
	var c Config
	if err := cfg.Decode(&c); err != nil {
		return nil, err
	}
	return &FinnhubProvider{dataDir: c.DataDir, logger: log.Default()}, nil
}

// DataDir returns the storage location the provider was constructed with.
func (p *FinnhubProvider) DataDir() string {
	return p.dataDir
}

// ProviderName returns the short diagnostic name, "finnhub".
func (p *FinnhubProvider) ProviderName() string {
	return types.DeriveProviderName(p)
}

// IsAvailable reports whether the finnhub data directory exists.
func (p *FinnhubProvider) IsAvailable() bool {
	if p.dataDir == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(p.dataDir, "finnhub_data"))
	return err == nil && info.IsDir()
}

// GetNews returns news records for a ticker within a date range.
func (p *FinnhubProvider) GetNews(ctx context.Context, ticker, startDate, endDate string) (types.DateRecords, error) {
	return p.load(ctx, ticker, newsData, startDate, endDate)
}

// GetInsiderSentiment returns insider sentiment records for a ticker within
// a date range.
func (p *FinnhubProvider) GetInsiderSentiment(ctx context.Context, ticker, startDate, endDate string) (types.DateRecords, error) {
	return p.load(ctx, ticker, insiderSenti, startDate, endDate)
}

// GetInsiderTransactions returns insider transaction records for a ticker
// within a date range.
func (p *FinnhubProvider) GetInsiderTransactions(ctx context.Context, ticker, startDate, endDate string) (types.DateRecords, error) {
	return p.load(ctx, ticker, insiderTrans, startDate, endDate)
}

// load reads the per-ticker file for a data type and filters its date keys
// to the inclusive range. Missing or corrupt files yield an empty result,
// never an error; only malformed date inputs are rejected.
func (p *FinnhubProvider) load(ctx context.Context, ticker, dataType, startDate, endDate string) (types.DateRecords, error) {
	if err := types.ValidateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(p.dataDir, "finnhub_data", dataType, ticker+"_data_formatted.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) && p.logger != nil {
			p.logger.Printf("finnhub: reading %s: %v", path, err)
		}
		return types.DateRecords{}, nil
	}

	var all types.DateRecords
	if err := json.Unmarshal(raw, &all); err != nil {
		if p.logger != nil {
			p.logger.Printf("finnhub: decoding %s: %v", path, err)
		}
		return types.DateRecords{}, nil
	}

	// Date keys sort lexicographically, so plain string comparison
	// implements the inclusive range filter.
	filtered := types.DateRecords{}
	for date, records := range all {
		if date >= startDate && date <= endDate && len(records) > 0 {
			filtered[date] = records
		}
	}
	return filtered, nil
}
