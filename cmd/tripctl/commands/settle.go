package commands

import (
	"context"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/tripsplit/pkg/api"
)

// settle: preview the settlement, or archive it when --note is given.
func settleCmd() *cobra.Command {
	var note string
	var participants []string

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Preview who owes whom; archive and clear expenses with --note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rpcContext(cmd)
			defer cancel()
			out := cmd.OutOrStdout()

			req := &api.PreviewSettlementRequest{}
			if cmd.Flags().Changed("participants") {
				req.Participants = participants
				if req.Participants == nil {
					req.Participants = []string{}
				}
			}
			preview, err := clients.settlements.PreviewSettlement(ctx, connect.NewRequest(req))
			if err != nil {
				return err
			}
			printPreview(out, preview.Msg.Preview)

			if !cmd.Flags().Changed("note") {
				fmt.Fprintln(out, "\nRun `tripctl settle --note <name>` to archive these expenses.")
				return nil
			}

			resp, err := clients.settlements.SettleUp(ctx, connect.NewRequest(&api.SettleUpRequest{Note: note}))
			if err != nil {
				if settlementID, failed, ok := api.PartialFailure(err); ok {
					fmt.Fprintf(out, "\nSettlement %s was archived, but %d expense(s) are still live.\n", shortID(settlementID), len(failed))
					return retryDeletes(ctx, cmd, failed)
				}
				return err
			}
			s := resp.Msg.Settlement
			fmt.Fprintf(out, "\nArchived %q: %d expenses, %s. Live expenses cleared.\n", s.Note, len(s.Expenses), rupiah(s.TotalAmount))
			return nil
		},
	}
	cmd.Flags().StringVarP(&note, "note", "n", "", "archive under this name, e.g. \"Bali 2024\"")
	cmd.Flags().StringSliceVar(&participants, "participants", nil, "split across these names instead of the roster")
	return cmd
}

func retryDeletes(ctx context.Context, cmd *cobra.Command, ids []string) error {
	resp, err := clients.expenses.DeleteExpenses(ctx, connect.NewRequest(&api.DeleteExpensesRequest{IDs: ids}))
	if err != nil {
		if _, failed, ok := api.PartialFailure(err); ok {
			return fmt.Errorf("retry failed for %d expense(s), run: tripctl expense rm %s",
				len(failed), strings.Join(failed, " "))
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Retried and deleted %d expense(s).\n", resp.Msg.Deleted)
	return nil
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse archived settlements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSettlements(cmd)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:     "ls",
			Aliases: []string{"list"},
			Short:   "List settlements, newest first",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listSettlements(cmd)
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a settlement and its archived expenses",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := rpcContext(cmd)
				defer cancel()

				list, err := clients.settlements.ListSettlements(ctx, connect.NewRequest(&api.ListSettlementsRequest{}))
				if err != nil {
					return err
				}
				ids := make([]string, len(list.Msg.Settlements))
				for i, s := range list.Msg.Settlements {
					ids[i] = s.ID
				}
				id, err := resolveID("settlement", args[0], ids)
				if err != nil {
					return err
				}

				resp, err := clients.settlements.GetSettlement(ctx, connect.NewRequest(&api.GetSettlementRequest{ID: id}))
				if err != nil {
					return err
				}
				s := resp.Msg.Settlement
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n\n", s.Note, s.Date.Local().Format("2 Jan 2006 15:04"))
				printExpenses(out, s.Expenses, s.TotalAmount)
				fmt.Fprintln(out)
				printPreview(out, resp.Msg.Summary)
				return nil
			},
		},
	)
	return cmd
}

func listSettlements(cmd *cobra.Command) error {
	ctx, cancel := rpcContext(cmd)
	defer cancel()
	resp, err := clients.settlements.ListSettlements(ctx, connect.NewRequest(&api.ListSettlementsRequest{}))
	if err != nil {
		return err
	}
	printSettlements(cmd.OutOrStdout(), resp.Msg.Settlements)
	return nil
}
