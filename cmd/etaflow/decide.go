package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/example/etaflow/internal/cli"
	"github.com/example/etaflow/internal/model"
	"github.com/example/etaflow/internal/rules"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func decideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Decide which stored sales orders get a status email",
		Long: `Evaluate every stored sales order against the send rules and report the
decision and reason code per order. Decisions are printed, never persisted;
delivery is a separate system's job.`,
		RunE: runDecide,
	}

	cmd.Flags().Bool("json", false, "emit decisions as JSON lines")
	cmd.Flags().StringSlice("relay-domains", nil, "marketplace relay email domains that never get mail")

	_ = viper.BindPFlag("decide.json", cmd.Flags().Lookup("json"))
	_ = viper.BindPFlag("email.relay_domains", cmd.Flags().Lookup("relay-domains"))

	return cmd
}

// decisionRecord is the JSON shape of one order's outcome.
type decisionRecord struct {
	OrderID    string           `json:"order_id"`
	Reason     model.ReasonCode `json:"reason"`
	ETA        string           `json:"eta,omitempty"`
	ShouldSend bool             `json:"should_send"`
}

func runDecide(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	orders, err := store.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}

	engine := rules.NewEngine(nil, viper.GetStringSlice("email.relay_domains"))
	asJSON := viper.GetBool("decide.json")

	var bar *progressbar.ProgressBar
	if !asJSON {
		fmt.Println(cli.FormatTitle("Evaluating sales orders"))
		bar = progressbar.Default(int64(len(orders)), "deciding")
	}

	sendCount := 0
	byReason := make(map[model.ReasonCode]int)
	records := make([]decisionRecord, 0, len(orders))

	for _, order := range orders {
		decision := engine.Decide(order)
		byReason[decision.Reason]++
		if decision.ShouldSend {
			sendCount++
		}

		rec := decisionRecord{
			OrderID:    order.ID,
			Reason:     decision.Reason,
			ShouldSend: decision.ShouldSend,
		}
		if decision.ETA != nil {
			rec.ETA = decision.ETA.Format("2006-01-02")
		}
		records = append(records, rec)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		for _, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("failed to encode decision: %w", err)
			}
		}
		return nil
	}

	fmt.Println()
	for _, rec := range records {
		line := fmt.Sprintf("%-12s %-36s %s", rec.OrderID, rec.Reason, rec.ETA)
		if rec.ShouldSend {
			fmt.Println(cli.SuccessStyle.Render(cli.MailIcon + " " + line))
		} else {
			fmt.Println(cli.SubtleStyle.Render("  " + line))
		}
	}

	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d of %d orders get an email", sendCount, len(orders))))
	for reason, count := range byReason {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("  %-36s %d", reason, count)))
	}

	return nil
}
