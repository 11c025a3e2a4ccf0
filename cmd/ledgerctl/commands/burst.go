// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-desk/internal/service"
	"github.com/MKhiriev/go-ledger-desk/models"
)

func burstCmd(c *cli) *cobra.Command {
	var (
		to     int32
		amount int32
		count  int
		rps    float64
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "burst --to <region> --amount <n> --count <k>",
		Short: "Send count transfers back to back on one session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			var stopWatch func()
			if watch {
				var err error
				if stopWatch, err = c.watchBalance(ctx, out); err != nil {
					return err
				}
			}

			start := time.Now()
			records, err := c.services.Ledger.Burst(ctx, models.TransferRequest{Recipient: to, Amount: amount}, count, rps)
			elapsed := time.Since(start)

			if stopWatch != nil {
				// let the observer catch the settled balance
				time.Sleep(2 * c.cfg.Workers.BalanceInterval)
				stopWatch()
			}

			fmt.Fprintf(out, "sent %d/%d transfers of %d -> %s in %s\n",
				len(records), count, amount, models.RegionName(to), elapsed.Round(time.Millisecond))
			return err
		},
	}

	cmd.Flags().Int32Var(&to, "to", 0, "recipient region id")
	cmd.Flags().Int32Var(&amount, "amount", 0, "amount per transfer, may be negative")
	cmd.Flags().IntVar(&count, "count", 1, "number of transfers")
	cmd.Flags().Float64Var(&rps, "rps", 0, "transfers per second, 0 sends as fast as possible")
	cmd.Flags().BoolVar(&watch, "watch", false, "print balance snapshots while sending")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// watchBalance runs the balance observer and prints every new snapshot until
// the returned stop function is called.
func (c *cli) watchBalance(ctx context.Context, out io.Writer) (func(), error) {
	opener, err := c.services.Ledger.Opener()
	if err != nil {
		return nil, err
	}

	interval := c.cfg.Workers.BalanceInterval
	c.services.Observer.Start(ctx, opener, interval)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		printSnapshots(done, c.services.Board, interval, out)
	}()

	return func() {
		c.services.Observer.Stop()
		close(done)
		wg.Wait()
	}, nil
}

func printSnapshots(done <-chan struct{}, board *service.BalanceBoard, interval time.Duration, out io.Writer) {
	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()

	var lastSeq uint64
	for {
		select {
		case <-done:
			if snap := board.Load(); snap.Seq != lastSeq && snap.Known() {
				fmt.Fprintf(out, "balance %d (#%d)\n", snap.Amount, snap.Seq)
			}
			return
		case <-ticker.C:
			snap := board.Load()
			if !snap.Known() || snap.Seq == lastSeq {
				continue
			}
			lastSeq = snap.Seq
			fmt.Fprintf(out, "balance %d (#%d)\n", snap.Amount, snap.Seq)
		}
	}
}
