package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cecil-the-coder/trading-provider-kit/pkg/config"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/dataflows"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/llm"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tradingkit",
	Short: "Trading Provider Kit CLI",
	Long: `Inspect and exercise the trading provider kit: list the registered
financial-data, LLM, and embedding providers, fetch data through a
configured provider, or embed text through a model backend.`,
	SilenceUsage: true,
}

// loadStore builds the configuration store from the --config flag.
func loadStore(cmd *cobra.Command) (*config.Store, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.New(), nil
	}
	return config.Load(path)
}

// --- providers command ---

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List registered providers per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore(cmd)
		if err != nil {
			return err
		}
		fmt.Printf("data:      %s\n", strings.Join(dataflows.NewFactory(store).ListProviders(), ", "))
		fmt.Printf("llm:       %s\n", strings.Join(llm.NewFactory(store).ListProviders(), ", "))
		fmt.Printf("embedding: %s\n", strings.Join(llm.NewEmbeddingFactory(store).ListProviders(), ", "))
		return nil
	},
}

// --- news command ---

var newsCmd = &cobra.Command{
	Use:   "news <ticker>",
	Short: "Fetch news through the configured data provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("provider")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")

		provider, err := dataflows.NewFactory(store).GetProvider(name, nil)
		if err != nil {
			return err
		}
		records, err := provider.GetNews(cmd.Context(), args[0], start, end)
		if err != nil {
			return err
		}

		dates := make([]string, 0, len(records))
		for date := range records {
			dates = append(dates, date)
		}
		sort.Strings(dates)
		for _, date := range dates {
			payload, err := json.Marshal(records[date])
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\n", date, payload)
		}
		fmt.Fprintf(os.Stderr, "%d day(s) of news from %q\n", len(records), provider.ProviderName())
		return nil
	},
}

// --- embed command ---

var embedCmd = &cobra.Command{
	Use:   "embed <text>",
	Short: "Embed text through the configured embedding provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("provider")

		provider, err := llm.NewEmbeddingFactory(store).GetProvider(name, nil)
		if err != nil {
			return err
		}
		vector, err := provider.Embed(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "model %s, %d dimensions\n", provider.EmbeddingModelName(), len(vector))
		payload, err := json.Marshal(vector)
		if err != nil {
			return err
		}
		fmt.Println(string(payload))
		return nil
	},
}

// --- name command ---

var nameCmd = &cobra.Command{
	Use:   "name",
	Short: "Show the configured provider's diagnostic name",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore(cmd)
		if err != nil {
			return err
		}
		provider, err := dataflows.NewFactory(store).GetProvider("", nil)
		if err != nil {
			return err
		}
		fmt.Println(types.DeriveProviderName(provider))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file")

	newsCmd.Flags().String("provider", "", "data provider name (default: configured)")
	newsCmd.Flags().String("start", "", "start date, YYYY-MM-DD")
	newsCmd.Flags().String("end", "", "end date, YYYY-MM-DD")
	_ = newsCmd.MarkFlagRequired("start")
	_ = newsCmd.MarkFlagRequired("end")

	embedCmd.Flags().String("provider", "", "embedding provider name (default: configured)")

	rootCmd.AddCommand(providersCmd, newsCmd, embedCmd, nameCmd)
}
