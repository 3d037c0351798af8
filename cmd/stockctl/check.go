package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fenilmodi00/stock-tracker/config"
	"github.com/fenilmodi00/stock-tracker/services"
	"github.com/spf13/cobra"
)

type checkStep struct {
	name string
	run  func(ctx context.Context, rt *services.Runtime) (string, error)
}

var checkSteps = []checkStep{
	{"Storage", func(ctx context.Context, rt *services.Runtime) (string, error) {
		return "reachable", rt.HealthCheck(ctx)
	}},
	{"Quote table", func(ctx context.Context, rt *services.Runtime) (string, error) {
		summaries, err := services.MarketSummaries(ctx, rt.Quotes)
		return fmt.Sprintf("%d symbols", len(summaries)), err
	}},
	{"Lookup", func(ctx context.Context, rt *services.Runtime) (string, error) {
		q, err := rt.Quotes.Lookup(ctx, "AAPL")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("AAPL $%.2f, %d samples", q.Price, len(q.History)), nil
	}},
	{"Watchlist", func(ctx context.Context, rt *services.Runtime) (string, error) {
		entries, err := rt.Session.Watchlist(ctx)
		return fmt.Sprintf("%d of %d symbols resolved", len(entries), len(rt.Watchlist.Symbols())), err
	}},
}

func newCheckCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run a quick health check against the configured storage and quote table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Stock Tracker Health Check - %s\n", time.Now().Format("2006-01-02 15:04:05"))
			fmt.Fprintln(out, strings.Repeat("=", 50))

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			rt, err := services.NewRuntime(ctx, cfg)
			if err != nil {
				fmt.Fprintf(out, "%-12s %s\n", "Runtime:", negativeStyle.Render("FAILED ("+err.Error()+")"))
				return err
			}
			defer rt.Close()

			passed := 0
			for _, step := range checkSteps {
				detail, err := step.run(ctx, rt)
				if err != nil {
					fmt.Fprintf(out, "%-12s %s\n", step.name+":", negativeStyle.Render("FAILED ("+err.Error()+")"))
					continue
				}
				fmt.Fprintf(out, "%-12s %s\n", step.name+":", positiveStyle.Render("OK ("+detail+")"))
				passed++
			}

			fmt.Fprintln(out, strings.Repeat("-", 50))
			total := len(checkSteps)
			switch {
			case passed == total:
				fmt.Fprintf(out, "SYSTEM HEALTHY: %d/%d checks passed\n", passed, total)
			case passed >= total/2:
				fmt.Fprintf(out, "SYSTEM DEGRADED: %d/%d checks passed\n", passed, total)
			default:
				fmt.Fprintf(out, "SYSTEM UNHEALTHY: %d/%d checks passed\n", passed, total)
			}
			if passed != total {
				return fmt.Errorf("%d check(s) failed", total-passed)
			}
			return nil
		},
	}
}
