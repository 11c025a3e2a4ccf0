package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-desk/models"
)

func transferCmd(c *cli) *cobra.Command {
	var (
		to        int32
		amount    int32
		pipelined bool
	)

	cmd := &cobra.Command{
		Use:   "transfer --to <region> --amount <n>",
		Short: "Send one transfer from the configured region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := models.TransferIsolated
			if pipelined {
				mode = models.TransferPipelined
			}

			record, err := c.services.Ledger.Transfer(cmd.Context(), models.TransferRequest{Recipient: to, Amount: amount}, mode)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s: %d -> %s (%s)\n",
				record.ID, record.Amount, models.RegionName(record.Recipient), record.Mode)
			return nil
		},
	}

	cmd.Flags().Int32Var(&to, "to", 0, "recipient region id")
	cmd.Flags().Int32Var(&amount, "amount", 0, "amount to move, may be negative")
	cmd.Flags().BoolVar(&pipelined, "pipelined", false, "write on a kept authenticated session")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
