package commands

import (
	"context"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/pkg/api"
)

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses", "e"},
		Short:   "Add, edit, remove and list expenses",
	}
	cmd.AddCommand(expenseAddCmd(), expenseEditCmd(), expenseRmCmd(), expenseLsCmd())
	return cmd
}

// expense add <title> <amount>: record an expense.
func expenseAddCmd() *cobra.Command {
	var payer, category string

	cmd := &cobra.Command{
		Use:   "add <title> <amount>",
		Short: "Record an expense (payer defaults to you)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := models.ParseAmount(args[1])
			if err != nil {
				return err
			}

			ctx, cancel := rpcContext(cmd)
			defer cancel()
			resp, err := clients.expenses.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{
				Title:    args[0],
				Amount:   &amount,
				Payer:    payer,
				Category: category,
			}))
			if err != nil {
				return err
			}

			e := resp.Msg.Expense
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s paid %s (%s)\n", shortID(e.ID), e.Payer, rupiah(e.Amount), e.Category)
			return nil
		},
	}
	cmd.Flags().StringVar(&payer, "payer", "", "who paid (default: you)")
	cmd.Flags().StringVarP(&category, "category", "c", string(models.CategoryMakanan), "transport, alat or makanan")
	return cmd
}

// expense edit <id>: change the fields given as flags.
func expenseEditCmd() *cobra.Command {
	var title, amount, payer, category string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rpcContext(cmd)
			defer cancel()

			id, err := resolveExpenseID(ctx, args[0])
			if err != nil {
				return err
			}

			req := &api.UpdateExpenseRequest{ID: id}
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = &title
			}
			if flags.Changed("amount") {
				v, err := models.ParseAmount(amount)
				if err != nil {
					return err
				}
				req.Amount = &v
			}
			if flags.Changed("payer") {
				req.Payer = &payer
			}
			if flags.Changed("category") {
				req.Category = &category
			}

			resp, err := clients.expenses.UpdateExpense(ctx, connect.NewRequest(req))
			if err != nil {
				return err
			}
			e := resp.Msg.Expense
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s, %s paid %s (%s)\n", shortID(e.ID), e.Title, e.Payer, rupiah(e.Amount), e.Category)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&payer, "payer", "", "new payer")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	return cmd
}

// expense rm <id>...: delete expenses.
func expenseRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete expenses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rpcContext(cmd)
			defer cancel()

			ids := make([]string, len(args))
			for i, prefix := range args {
				id, err := resolveExpenseID(ctx, prefix)
				if err != nil {
					return err
				}
				ids[i] = id
			}

			if len(ids) == 1 {
				if _, err := clients.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ID: ids[0]})); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Deleted 1 expense")
				return nil
			}

			resp, err := clients.expenses.DeleteExpenses(ctx, connect.NewRequest(&api.DeleteExpensesRequest{IDs: ids}))
			if err != nil {
				if _, failed, ok := api.PartialFailure(err); ok {
					return fmt.Errorf("%d expense(s) could not be deleted, retry with: tripctl expense rm %s",
						len(failed), strings.Join(failed, " "))
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expenses\n", resp.Msg.Deleted)
			return nil
		},
	}
}

// expense ls: list live expenses, newest first.
func expenseLsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List live expenses",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rpcContext(cmd)
			defer cancel()
			resp, err := clients.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{Category: category}))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printExpenses(out, resp.Msg.Expenses, resp.Msg.Total)
			fmt.Fprintln(out)
			printCategoryTotals(out, resp.Msg.CategoryTotals)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only show one category")
	return cmd
}

func resolveExpenseID(ctx context.Context, prefix string) (string, error) {
	resp, err := clients.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{}))
	if err != nil {
		return "", err
	}
	ids := make([]string, len(resp.Msg.Expenses))
	for i, e := range resp.Msg.Expenses {
		ids[i] = e.ID
	}
	return resolveID("expense", prefix, ids)
}
