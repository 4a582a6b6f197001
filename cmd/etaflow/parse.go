package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/etaflow/internal/cli"
	"github.com/example/etaflow/internal/etd"
	"github.com/example/etaflow/internal/loader"
	"github.com/example/etaflow/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse ETD comments from a PO line export",
		Long: `Parse the free-text ETD comment on every purchase-order line and report
what each one resolved to: a date, an explicit "No ETD", or nothing.`,
		RunE: runParse,
	}

	cmd.Flags().String("pos", "", "purchase-order line CSV export (defaults to stored lines)")
	cmd.Flags().Int("default-year", 0, "year assumed for dates written without one (defaults to the current year)")

	_ = viper.BindPFlag("parse.pos", cmd.Flags().Lookup("pos"))
	_ = viper.BindPFlag("parse.default_year", cmd.Flags().Lookup("default-year"))

	return cmd
}

func runParse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var (
		lines []model.POLine
		err   error
	)
	if path := viper.GetString("parse.pos"); path != "" {
		lines, err = loader.LoadPOLines(path)
		if err != nil {
			return fmt.Errorf("failed to load PO lines: %w", err)
		}
	} else {
		store, storeErr := openStorage(ctx)
		if storeErr != nil {
			return storeErr
		}
		defer func() { _ = store.Close() }()

		lines, err = store.GetPOLines(ctx)
		if err != nil {
			return fmt.Errorf("failed to read stored PO lines: %w", err)
		}
	}

	defaultYear := viper.GetInt("parse.default_year")
	if defaultYear == 0 {
		defaultYear = time.Now().Year()
	}

	fmt.Println(cli.FormatTitle("Parsed ETD comments"))
	fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-10s %-14s %-12s %-7s %s", "PO", "SKU", "ETD", "No ETD", "Comment")))

	for _, line := range lines {
		parsed := etd.Parse(line.Comment, nil, defaultYear)

		etaCell := "-"
		if parsed.HasDate() {
			etaCell = parsed.Date.Format("02/01/2006")
		}
		noETDCell := ""
		if parsed.NoETD {
			noETDCell = cli.WarningStyle.Render("yes")
		}

		fmt.Println(cli.TableCellStyle.Render(
			fmt.Sprintf("%-10s %-14s %-12s %-7s %s", line.POID, line.SKU, etaCell, noETDCell, firstChars(line.Comment, 40)),
		))
	}

	return nil
}

// firstChars flattens and trims a comment for single-line table display.
func firstChars(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
