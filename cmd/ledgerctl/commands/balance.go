package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-desk/models"
)

func balanceCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print the balance of the configured region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := c.services.Ledger.Balance(cmd.Context())
			if err != nil {
				return err
			}
			region := c.services.Ledger.Region()
			fmt.Fprintf(cmd.OutOrStdout(), "%s (#%d): %d\n", models.RegionName(region), region, balance)
			return nil
		},
	}
}
