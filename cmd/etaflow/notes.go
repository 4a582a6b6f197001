package main

import (
	"fmt"
	"time"

	"github.com/example/etaflow/internal/apply"
	"github.com/example/etaflow/internal/cli"
	"github.com/example/etaflow/internal/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func notesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Write parsed supplier ETAs into sales-order notes",
		Long: `Parse stored purchase-order comments, pick the first usable date per SKU,
and merge it as the top status line of every matching sales-order note.
Notes are de-duplicated and trimmed from the bottom to fit the order
system's field limits.`,
		RunE: runNotes,
	}

	cmd.Flags().Bool("dry-run", false, "report note changes without saving them")
	_ = viper.BindPFlag("notes.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runNotes(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	poLines, err := store.GetPOLines(ctx)
	if err != nil {
		return fmt.Errorf("failed to read PO lines: %w", err)
	}
	soLines, err := store.GetSOLines(ctx)
	if err != nil {
		return fmt.Errorf("failed to read SO lines: %w", err)
	}

	etas := apply.BuildSKUIndex(poLines, time.Now().Year())
	common.LogInfo("Indexed supplier ETAs", common.Fields{"skus": len(etas)})

	dryRun := viper.GetBool("notes.dry_run")
	results := apply.ApplyETAs(soLines, etas)

	updated := 0
	for _, r := range results {
		if !r.Changed {
			continue
		}
		updated++
		common.LogDebug("note updated", common.Fields{"order": r.OrderID, "sku": r.SKU})

		if dryRun {
			continue
		}
		if err := store.UpdateLineNote(ctx, r.OrderID, r.SKU, r.NewNote); err != nil {
			return fmt.Errorf("failed to save note for order %s: %w", r.OrderID, err)
		}
	}

	if dryRun {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Dry run: %d of %d notes would change", updated, len(results))))
		return nil
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated %d of %d notes", updated, len(results))))
	return nil
}
