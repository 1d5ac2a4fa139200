package commands

import (
	"context"
	"fmt"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/pkg/api"
)

func itemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "item",
		Aliases: []string{"items", "i"},
		Short:   "Manage the shared shopping list",
	}
	cmd.AddCommand(itemAddCmd(), itemBuyCmd(), itemUnbuyCmd(), itemEditCmd(), itemRmCmd(), itemLsCmd())
	return cmd
}

// item add <name>: add an item, optionally already bought.
func itemAddCmd() *cobra.Command {
	var qty, price, purchaser string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item to the shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &api.AddItemRequest{Name: args[0], QuantityNeeded: qty}
			if cmd.Flags().Changed("price") {
				v, err := models.ParseAmount(price)
				if err != nil {
					return err
				}
				req.IsBought = true
				req.Price = &v
				if purchaser != "" {
					req.Purchaser = &purchaser
				}
			}

			ctx, cancel := rpcContext(cmd)
			defer cancel()
			resp, err := clients.inventory.AddItem(ctx, connect.NewRequest(req))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", resp.Msg.Item.Name, shortID(resp.Msg.Item.ID))
			printPurchaseExpense(cmd, resp.Msg.Expense)
			return nil
		},
	}
	cmd.Flags().StringVarP(&qty, "qty", "q", "", "quantity needed, e.g. 5kg")
	cmd.Flags().StringVar(&price, "price", "", "mark as already bought at this price")
	cmd.Flags().StringVar(&purchaser, "by", "", "who bought it (default: you)")
	return cmd
}

// item buy <id> <price>: mark an item bought.
func itemBuyCmd() *cobra.Command {
	var purchaser string

	cmd := &cobra.Command{
		Use:   "buy <id> <price>",
		Short: "Mark an item bought; a price above zero records an expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := models.ParseAmount(args[1])
			if err != nil {
				return err
			}

			ctx, cancel := rpcContext(cmd)
			defer cancel()
			id, err := resolveItemID(ctx, args[0])
			if err != nil {
				return err
			}
			resp, err := clients.inventory.MarkBought(ctx, connect.NewRequest(&api.MarkBoughtRequest{
				ID:        id,
				Price:     price,
				Purchaser: purchaser,
			}))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bought %s\n", resp.Msg.Item.Name)
			printPurchaseExpense(cmd, resp.Msg.Expense)
			return nil
		},
	}
	cmd.Flags().StringVar(&purchaser, "by", "", "who bought it (default: you)")
	return cmd
}

// item unbuy <id>: revert an item to not bought.
func itemUnbuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unbuy <id>",
		Short: "Mark an item not bought (its expense stays)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rpcContext(cmd)
			defer cancel()
			id, err := resolveItemID(ctx, args[0])
			if err != nil {
				return err
			}
			resp, err := clients.inventory.UnmarkBought(ctx, connect.NewRequest(&api.UnmarkBoughtRequest{ID: id}))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is back on the list. Its expense was kept; remove it with `tripctl expense rm` if needed.\n", resp.Msg.Item.Name)
			return nil
		},
	}
}

// item edit <id>: change name or quantity.
func itemEditCmd() *cobra.Command {
	var name, qty string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename an item or change its quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rpcContext(cmd)
			defer cancel()
			item, err := findItem(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				item.Name = name
			}
			if cmd.Flags().Changed("qty") {
				item.QuantityNeeded = qty
			}

			resp, err := clients.inventory.UpdateItem(ctx, connect.NewRequest(&api.UpdateItemRequest{Item: item}))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", resp.Msg.Item.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVarP(&qty, "qty", "q", "", "new quantity")
	return cmd
}

// item rm <id>: delete an item.
func itemRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an item from the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rpcContext(cmd)
			defer cancel()
			id, err := resolveItemID(ctx, args[0])
			if err != nil {
				return err
			}
			if _, err := clients.inventory.DeleteItem(ctx, connect.NewRequest(&api.DeleteItemRequest{ID: id})); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed")
			return nil
		},
	}
}

// item ls: print the shopping list.
func itemLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print the shopping list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rpcContext(cmd)
			defer cancel()
			resp, err := clients.inventory.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{}))
			if err != nil {
				return err
			}
			printItems(cmd.OutOrStdout(), resp.Msg.Items)
			return nil
		},
	}
}

func printPurchaseExpense(cmd *cobra.Command, e *api.Expense) {
	if e == nil {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded expense %s: %s paid %s (%s)\n", shortID(e.ID), e.Payer, rupiah(e.Amount), e.Category)
}

func findItem(ctx context.Context, prefix string) (api.InventoryItem, error) {
	resp, err := clients.inventory.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{}))
	if err != nil {
		return api.InventoryItem{}, err
	}
	ids := make([]string, len(resp.Msg.Items))
	for i, item := range resp.Msg.Items {
		ids[i] = item.ID
	}
	id, err := resolveID("item", prefix, ids)
	if err != nil {
		return api.InventoryItem{}, err
	}
	for _, item := range resp.Msg.Items {
		if item.ID == id {
			return item, nil
		}
	}
	return api.InventoryItem{}, fmt.Errorf("no item matches %q", prefix)
}

func resolveItemID(ctx context.Context, prefix string) (string, error) {
	item, err := findItem(ctx, prefix)
	return item.ID, err
}
