package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/910cpr/ew2landers/internal/prices"
)

func newPricesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Scrape registration pages for prices and refresh the price cache",
		RunE:  runPrices,
	}
}

func runPrices(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, sessions, _, err := loadSchedule(cfg)
	if err != nil {
		return err
	}

	cache, err := prices.LoadCache(cfg.PriceCachePath)
	if err != nil {
		return err
	}
	expired := cache.CleanExpired()

	enricher := prices.NewEnricher(cache)
	priced, fetched := enricher.Enrich(cmd.Context(), sessions)

	if err := prices.SaveCache(cfg.PriceCachePath, cache); err != nil {
		return err
	}

	fmt.Printf("Priced %d of %d sessions (%d fetched, %d expired entries dropped, cache size %d).\n",
		priced, len(sessions), fetched, expired, cache.Size())
	return nil
}
