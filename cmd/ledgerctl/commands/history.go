package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-desk/models"
)

func historyCmd(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:         "history",
		Short:       "List journaled transfers, newest first",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipLogin: "journal"},
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := c.services.Ledger.History(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SENT AT\tFROM\tTO\tAMOUNT\tMODE\tID")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
					r.SentAt.Local().Format(time.RFC3339),
					models.RegionName(r.Sender),
					models.RegionName(r.Recipient),
					r.Amount, r.Mode, r.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of records")
	return cmd
}
