package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fleet-tracker/core/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var yesConfirm bool

// migrateCmd applies the schema migrations.
var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down]",
	Short: "Apply or roll back the database schema",
	Long: `Applies the embedded schema migrations (default: up).

Rolling back drops the vehicles and logs tables and asks for confirmation.

Examples:
  migrate
  migrate down --yes`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{database.DirectionUp, database.DirectionDown},
	RunE:      runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	direction := database.DirectionUp
	if len(args) == 1 {
		direction = args[0]
	}

	cfg, l, err := loadBase()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	if direction == database.DirectionDown && !confirmDestructiveAction(cmd.InOrStdin(), cmd.OutOrStdout(), yesConfirm) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	l.Info("Migrating schema", zap.String("driver", cfg.Database.Driver), zap.String("direction", direction))
	if err := database.Migrate(db, cfg.Database.Driver, direction); err != nil {
		return err
	}
	l.Info("Schema migrated")
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(in io.Reader, out io.Writer, yes bool) bool {
	if yes {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "\n⚠️  Type 'yes' to drop all vehicles and logs: ")
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
