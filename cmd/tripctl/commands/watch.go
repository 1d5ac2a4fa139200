package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/tripsplit/pkg/api"
)

// watch: follow live changes until interrupted.
func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow live changes",
	}
	expenses := &cobra.Command{
		Use:   "expenses",
		Short: "Print the expense list whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			stream, err := clients.expenses.WatchExpenses(ctx, connect.NewRequest(&api.WatchExpensesRequest{Category: category}))
			if err != nil {
				return err
			}
			return follow(ctx, cmd, stream, func(msg *api.ListExpensesResponse) {
				printExpenses(cmd.OutOrStdout(), msg.Expenses, msg.Total)
			})
		},
	}
	expenses.Flags().StringP("category", "c", "", "only show one category")

	cmd.AddCommand(
		expenses,
		&cobra.Command{
			Use:   "inventory",
			Short: "Print the shopping list whenever it changes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()

				stream, err := clients.inventory.WatchInventory(ctx, connect.NewRequest(&api.WatchInventoryRequest{}))
				if err != nil {
					return err
				}
				return follow(ctx, cmd, stream, func(msg *api.ListItemsResponse) {
					printItems(cmd.OutOrStdout(), msg.Items)
				})
			},
		},
		&cobra.Command{
			Use:   "settlements",
			Short: "Print settlement history whenever it changes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()

				stream, err := clients.settlements.WatchSettlements(ctx, connect.NewRequest(&api.WatchSettlementsRequest{}))
				if err != nil {
					return err
				}
				return follow(ctx, cmd, stream, func(msg *api.ListSettlementsResponse) {
					printSettlements(cmd.OutOrStdout(), msg.Settlements)
				})
			},
		},
	)
	return cmd
}

func follow[T any](ctx context.Context, cmd *cobra.Command, stream *connect.ServerStreamForClient[T], render func(*T)) error {
	defer stream.Close()
	out := cmd.OutOrStdout()
	for stream.Receive() {
		fmt.Fprintf(out, "\n-- %s --\n", time.Now().Format(time.Kitchen))
		render(stream.Msg())
	}
	if ctx.Err() != nil {
		return nil
	}
	return stream.Err()
}
