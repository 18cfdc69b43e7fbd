package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// statusCmd reports whether the database is ready for an import and what it holds.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema readiness and catalog row counts",
	RunE:  runStatus,
}

func init() {
	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := bootstrap(false)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	svc := rt.service(nil)
	out := cmd.OutOrStdout()

	missing, err := svc.Schema(ctx)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		fmt.Fprintf(out, "Schema: not ready, missing %s\n", strings.Join(missing, ", "))
		return nil
	}
	fmt.Fprintln(out, "Schema: ready")

	t, err := svc.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Sets:             %d\n", t.Sets)
	fmt.Fprintf(out, "Set types:        %d\n", t.SetTypes)
	fmt.Fprintf(out, "Cards:            %d\n", t.Cards)
	fmt.Fprintf(out, "Printings:        %d\n", t.Printings)
	fmt.Fprintf(out, "Artists:          %d\n", t.Artists)
	fmt.Fprintf(out, "Frame effects:    %d\n", t.FrameEffects)
	fmt.Fprintf(out, "Promo types:      %d\n", t.PromoTypes)
	fmt.Fprintf(out, "Legacy printings: %d\n", t.OrphanPrintings)
	return nil
}
