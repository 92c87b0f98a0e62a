package main

import (
	"fmt"
	"os"
	"time"

	"marketview-backend/lib/configutil"
	"marketview-backend/lib/refdata"
	"marketview-backend/lib/restyutil"
	"marketview-backend/lib/scrapers/marketwatch"
	"marketview-backend/services/indexsummary"

	"github.com/spf13/cobra"
)

type Config struct {
	RefdataDb      string            `json:"refdata_db"`
	TimeoutSeconds int               `json:"timeout_seconds"`
	Headers        map[string]string `json:"headers"`
}

var config Config
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "marketview",
	Short: "Scrapes and summarizes stock market index data.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initTelemetry(cmd.Context(), verbose)
	},
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

func newScrapeClient() *marketwatch.Client {
	client := marketwatch.NewClient(marketwatch.ClientOptions{
		Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		Headers: config.Headers,
	})
	if verbose {
		client.SetRestyInstrumentOutput(
			restyutil.NewFilesystemOutput("resty_telemetry/marketwatch"),
		)
	}
	return client
}

func openStore() *refdata.Store {
	store, err := refdata.OpenStore(config.RefdataDb)
	if err != nil {
		fatal(err)
	}
	return store
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <index>",
	Short: "Fetches and prints the scraped metrics for an index.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		bundle, err := newScrapeClient().Scrape(cmd.Context(), args[0])
		if err != nil {
			fatal(err)
		}
		indexsummary.RenderBundle(os.Stdout, bundle)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <index>",
	Short: "Prints the full summary of an index: sector counts and performance tables.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer store.Close()

		providers := map[string]refdata.Provider{}
		for _, index := range marketwatch.SupportedIndexes() {
			providers[index] = store.Index(index)
		}

		service := indexsummary.NewService(newScrapeClient(), providers)
		summary, err := service.Summary(cmd.Context(), args[0])
		if err != nil {
			fatal(err)
		}
		summary.RenderText(os.Stdout)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(refdataCmd)
}

func main() {
	var err error
	config, err = configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		fatal(err)
	}
	if config.RefdataDb == "" {
		config.RefdataDb = "marketview.db"
	}

	err = rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
