package cmd

import (
	"context"
	"fmt"

	"fleet-tracker/feature/tier"

	"github.com/spf13/cobra"
)

// zonesCmd prints the vendor's root zones.
var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List the vendor's root zones",
	Long:  `Queries the vendor for every root zone and prints one id per line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadBase()
		if err != nil {
			return err
		}
		defer func() { _ = l.Sync() }()

		zones, err := tier.NewClient(cfg.Tier, l).ListZones(context.Background())
		if err != nil {
			return err
		}
		for _, z := range zones {
			fmt.Fprintln(cmd.OutOrStdout(), z)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(zonesCmd)
}
