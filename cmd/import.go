package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/catalog/models"

	"github.com/jinzhu/inflection"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importFlush    bool
	importYes      bool
	importSnapshot string
)

// importCmd runs one catalog import from the command line.
var importCmd = &cobra.Command{
	Use:   "import [set_code...]",
	Short: "Import the card catalog into the database",
	Long: `Import sets, cards and printings from the external catalog.

Sets are always synced in full. Cards and printings are limited to the given set
codes, or cover every set when none are given. The run is a single transaction.

Examples:
  # Import everything
  import

  # Import two sets
  import khm stx

  # Delete every catalog row first (asks for confirmation)
  import --flush

  # Replay the newest archived bulk payload instead of downloading
  import --snapshot latest`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importFlush, "flush", false, "Delete every catalog row before importing")
	importCmd.Flags().BoolVar(&importYes, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	importCmd.Flags().StringVar(&importSnapshot, "snapshot", "", `Replay an archived bulk payload ("latest" or an object name)`)

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(importSnapshot != "")
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	if importFlush && !confirmDestructiveAction() {
		rt.log.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	scope := reconcile.ParseScope(args)
	svc := catalog.NewService(rt.catalogClient(importSnapshot), rt.db, rt.log, nil, rt.cfg.Database.AutoMigrate)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Beginning import of %s.\n", describeScope(args))
	stats, err := svc.Import(ctx, scope, catalog.ImportOptions{Flush: importFlush})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Import complete.")
	fmt.Fprintln(out, importReport(stats))

	rt.log.Debug("Import stats", zap.Any("stats", stats))
	return nil
}

// describeScope renders the requested codes the way the report names them.
func describeScope(codes []string) string {
	if len(codes) == 0 {
		return "all sets"
	}
	return fmt.Sprintf("%s (%s)", countNoun(int64(len(codes)), "set"), strings.Join(codes, ", "))
}

// importReport summarizes the rows an import created.
func importReport(stats *models.ImportStats) string {
	parts := []string{
		countNoun(stats.Sets, "new Set"),
		countNoun(stats.Cards, "new Card"),
		countNoun(stats.Printings, "new Printing"),
	}
	return fmt.Sprintf("Added %s, %s, and %s.", parts[0], parts[1], parts[2])
}

func countNoun(n int64, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if importYes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  This deletes every catalog row. Type 'yes' to confirm: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
