package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fenilmodi00/stock-tracker/config"
	"github.com/fenilmodi00/stock-tracker/models"
	"github.com/fenilmodi00/stock-tracker/services"
	"github.com/fenilmodi00/stock-tracker/shared"
	"github.com/spf13/cobra"
)

var (
	symbolStyle   = lipgloss.NewStyle().Bold(true)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1ca05c"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d83a3a"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	cfg := config.LoadConfig()

	rootCmd := &cobra.Command{
		Use:           "stockctl",
		Short:         "stockctl - demo stock quotes and watchlist from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := cfg.LogLevel
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				level = "debug"
			} else if level == "info" {
				level = "warn"
			}
			shared.ConfigureLogging(level, "text")
		},
	}

	rootCmd.AddCommand(newQuoteCmd(cfg))
	rootCmd.AddCommand(newHistoryCmd(cfg))
	rootCmd.AddCommand(newWatchlistCmd(cfg))
	rootCmd.AddCommand(newCheckCmd(cfg))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

func withRuntime(cfg *config.Config, fn func(ctx context.Context, rt *services.Runtime) error) error {
	ctx := context.Background()
	rt, err := services.NewRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(ctx, rt)
}

func newQuoteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "quote [SYMBOL]",
		Short: "Show the current quote for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cfg, func(ctx context.Context, rt *services.Runtime) error {
				quote, err := rt.Session.Quote(ctx, args[0])
				if err != nil {
					return err
				}
				printQuote(cmd.OutOrStdout(), quote, rt.Watchlist.Contains(quote.Symbol))
				return nil
			})
		},
	}
}

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [SYMBOL]",
		Short: "Print a generated daily price history for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			return withRuntime(cfg, func(ctx context.Context, rt *services.Runtime) error {
				quote, err := rt.Session.Quote(ctx, args[0])
				if err != nil {
					return err
				}
				history := services.NewHistoryGenerator().Generate(quote.Price, days)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s %s\n", symbolStyle.Render(quote.Symbol), mutedStyle.Render(fmt.Sprintf("seed $%.2f", quote.Price)))
				for _, sample := range history {
					fmt.Fprintf(out, "%s  %10.2f\n", sample.Date, sample.Price)
				}
				return nil
			})
		},
	}

	cmd.Flags().Int("days", services.DefaultHistoryDays, "Number of days before today to generate")
	return cmd
}

func newWatchlistCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Inspect or change the persisted watchlist",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List watched symbols with their quotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cfg, func(ctx context.Context, rt *services.Runtime) error {
				entries, err := rt.Session.Watchlist(ctx)
				if err != nil {
					return err
				}
				printWatchlist(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle [SYMBOL]",
		Short: "Add a symbol to the watchlist, or remove it if already watched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cfg, func(ctx context.Context, rt *services.Runtime) error {
				result, err := rt.Session.ToggleWatchlist(ctx, args[0])
				if err != nil {
					return err
				}
				action := "Removed"
				if result.InWatchlist {
					action = "Added"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d watched)\n", action, symbolStyle.Render(result.Symbol), len(result.Symbols))
				return nil
			})
		},
	})

	return cmd
}

func printQuote(out io.Writer, q *models.Quote, watched bool) {
	star := ""
	if watched {
		star = " *"
	}
	fmt.Fprintf(out, "%s (%s)%s\n", q.Name, symbolStyle.Render(q.Symbol), star)
	fmt.Fprintf(out, "$%.2f  %s\n", q.Price, changeStyle(q.Change).Render(services.FormatChange(q.Change, q.ChangePercent)))
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("Market cap %s  Volume %s  High $%.2f  Low $%.2f", q.MarketCap, q.Volume, q.DayHigh, q.DayLow)))
}

func printWatchlist(out io.Writer, entries []models.WatchlistEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("Add stocks to your watchlist to track them easily"))
		return
	}
	for _, entry := range entries {
		q := entry.Quote
		fmt.Fprintf(out, "%-6s $%9.2f  %s\n", symbolStyle.Render(entry.Symbol), q.Price,
			changeStyle(q.Change).Render(services.FormatChange(q.Change, q.ChangePercent)))
	}
}

func changeStyle(change float64) lipgloss.Style {
	if change >= 0 {
		return positiveStyle
	}
	return negativeStyle
}
