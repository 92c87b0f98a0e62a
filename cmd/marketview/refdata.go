package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"marketview-backend/lib/refdata"

	"github.com/spf13/cobra"
)

var refdataCmd = &cobra.Command{
	Use:   "refdata",
	Short: "Manages the static reference table of tickers and sectors.",
}

var refdataImportCmd = &cobra.Command{
	Use:   "import <index> <csv-file>",
	Short: "Imports a ticker,name,sector csv file as the reference table for an index.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		index := strings.ToUpper(args[0])

		f, err := os.Open(args[1])
		if err != nil {
			fatal(err)
		}
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		if err != nil {
			fatal(err)
		}

		var stocks []refdata.Stock
		for i, record := range records {
			if len(record) != 3 {
				fatal(fmt.Errorf("line %d: want 3 columns (ticker,name,sector), got %d", i+1, len(record)))
			}
			stocks = append(stocks, refdata.Stock{
				Ticker: record[0],
				Name:   record[1],
				Sector: record[2],
			})
		}

		store := openStore()
		defer store.Close()

		err = store.Put(cmd.Context(), index, stocks)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("imported %d stocks for %s\n", len(stocks), index)
	},
}

func init() {
	refdataCmd.AddCommand(refdataImportCmd)
}
