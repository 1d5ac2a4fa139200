package commands

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mmynk/tripsplit/pkg/api"
)

// rupiah formats a whole amount as "Rp 1,250,000".
func rupiah(v int64) string {
	if v < 0 {
		return "-Rp " + humanize.Comma(-v)
	}
	return "Rp " + humanize.Comma(v)
}

// rupiahf rounds a share to the nearest unit for display.
func rupiahf(v float64) string {
	return rupiah(int64(math.Round(v)))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printExpenses(w io.Writer, expenses []api.Expense, total int64) {
	if len(expenses) == 0 {
		fmt.Fprintln(w, "No expenses yet.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tTITLE\tCATEGORY\tPAYER\tAMOUNT")
	for _, e := range expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(e.ID), humanize.Time(e.Date), e.Title, e.Category, e.Payer, rupiah(e.Amount))
	}
	fmt.Fprintf(tw, "\t\t\t\tTOTAL\t%s\n", rupiah(total))
	tw.Flush()
}

func printCategoryTotals(w io.Writer, totals map[string]int64) {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s %s", name, rupiah(totals[name]))
	}
	fmt.Fprintln(w, strings.Join(parts, " | "))
}

func printItems(w io.Writer, items []api.InventoryItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Shopping list is empty.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\t\tITEM\tQTY\tPRICE\tBOUGHT BY")
	for _, item := range items {
		mark, price, by := "[ ]", "", ""
		if item.IsBought {
			mark = "[x]"
			if item.Price != nil {
				price = rupiah(*item.Price)
			}
			if item.Purchaser != nil {
				by = *item.Purchaser
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(item.ID), mark, item.Name, item.QuantityNeeded, price, by)
	}
	tw.Flush()
}

func printPreview(w io.Writer, p api.SettlementPreview) {
	fmt.Fprintf(w, "Total: %s across %d participants, %s each\n\n",
		rupiah(p.TotalExpense), len(p.Participants), rupiahf(p.SharePerPerson))

	tw := newTable(w)
	fmt.Fprintln(tw, "PAID BY\tAMOUNT")
	for _, paid := range p.PaidBy {
		fmt.Fprintf(tw, "%s\t%s\n", paid.Name, rupiah(paid.Amount))
	}
	tw.Flush()

	if len(p.Receivables) == 0 {
		fmt.Fprintln(w, "\nNothing to settle.")
		return
	}
	fmt.Fprintln(w)
	for _, r := range p.Receivables {
		fmt.Fprintf(w, "Everyone pays %s %s (paid %s)\n", r.Payer, rupiahf(r.AmountPerUser), rupiah(r.TotalPaid))
	}
}

func printSettlements(w io.Writer, settlements []api.Settlement) {
	if len(settlements) == 0 {
		fmt.Fprintln(w, "No settlements yet.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tNOTE\tEXPENSES\tTOTAL")
	for _, s := range settlements {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			shortID(s.ID), s.Date.Local().Format(time.DateOnly), s.Note, len(s.Expenses), rupiah(s.TotalAmount))
	}
	tw.Flush()
}
