package main

import (
	"fmt"
	"log/slog"

	"github.com/example/etaflow/internal/cli"
	"github.com/example/etaflow/internal/common"
	"github.com/example/etaflow/internal/loader"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import PO and SO line exports into the local database",
		Long: `Import purchase-order and sales-order line CSV exports.

Lines are stored as-is, including malformed quantity and date cells; the
decision engines treat those as expected input, not errors.`,
		RunE: runImport,
	}

	cmd.Flags().String("pos", "", "purchase-order line CSV export")
	cmd.Flags().String("sos", "", "sales-order line CSV export")

	_ = viper.BindPFlag("import.pos", cmd.Flags().Lookup("pos"))
	_ = viper.BindPFlag("import.sos", cmd.Flags().Lookup("sos"))

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	posPath := viper.GetString("import.pos")
	sosPath := viper.GetString("import.sos")
	if posPath == "" && sosPath == "" {
		return fmt.Errorf("nothing to import: provide --pos and/or --sos")
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	batchID := uuid.NewString()
	slog.Info(cli.FormatTitle("Importing order lines"), "batch", batchID)

	if posPath != "" {
		lines, err := loader.LoadPOLines(posPath)
		if err != nil {
			return fmt.Errorf("failed to load PO lines: %w", err)
		}
		if len(lines) == 0 {
			return common.ErrNoPOLines
		}
		if err := store.SavePOLines(ctx, batchID, lines); err != nil {
			return fmt.Errorf("failed to save PO lines: %w", err)
		}
		slog.Info("Imported PO lines", "file", posPath, "count", len(lines))
	}

	if sosPath != "" {
		lines, err := loader.LoadSOLines(sosPath)
		if err != nil {
			return fmt.Errorf("failed to load SO lines: %w", err)
		}
		if len(lines) == 0 {
			return common.ErrNoSOLines
		}
		if err := store.SaveSOLines(ctx, batchID, lines); err != nil {
			return fmt.Errorf("failed to save SO lines: %w", err)
		}
		slog.Info("Imported SO lines", "file", sosPath, "count", len(lines))
	}

	fmt.Println(cli.FormatSuccess("Import complete"))
	return nil
}
