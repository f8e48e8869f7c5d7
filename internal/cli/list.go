package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gokturk078/cektakip/internal/checks"
	"github.com/gokturk078/cektakip/internal/models"
)

// listOrder reads an optional column and direction from command args.
// Direction defaults to ascending; an empty column means store order.
func listOrder(args []string) (column, direction string) {
	direction = "asc"
	if len(args) > 0 {
		column = args[0]
	}
	if len(args) > 1 && args[1] == "desc" {
		direction = "desc"
	}
	return column, direction
}

// List prints every record, optionally ordered by a wire-named column.
// Usage: list [column] [asc|desc]
func (a *App) List(ctx context.Context, args []string) error {
	records := a.store.GetAll()
	if len(records) == 0 {
		fmt.Println("No records")
		return nil
	}

	if column, direction := listOrder(args); column != "" {
		records = checks.Sort(records, column, direction)
	}

	for i := range records {
		printCheckLine(os.Stdout, &records[i])
	}
	fmt.Printf("%d record(s)\n", len(records))
	return nil
}

func (a *App) Get(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: get <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Invalid id:", args[0])
		return nil
	}
	c := a.store.GetByID(id)
	if c == nil {
		fmt.Println("Not found")
		return nil
	}
	printCheckDetail(os.Stdout, c)
	return nil
}

// SearchCmd runs a substring search over company, check number and bank.
// Extra filters can be passed as key=value pairs:
//
//	search acme status=BEKLEMEDE bank="GARANTİ BANKASI" currency=TL
func (a *App) SearchCmd(ctx context.Context, args []string) error {
	var query string
	var f checks.Filters

	for _, arg := range args {
		k, v, found := strings.Cut(arg, "=")
		if !found {
			if query != "" {
				query += " "
			}
			query += arg
			continue
		}
		switch strings.ToLower(k) {
		case "status":
			f.Status = models.Status(v)
		case "currency":
			f.Currency = strings.ToUpper(v)
		case "bank":
			f.Bank = v
		case "min":
			amt, err := models.NewAmount(v)
			if err != nil {
				fmt.Println("Invalid min amount:", v)
				return nil
			}
			f.MinAmount = amt
		case "max":
			amt, err := models.NewAmount(v)
			if err != nil {
				fmt.Println("Invalid max amount:", v)
				return nil
			}
			f.MaxAmount = amt
		default:
			fmt.Println("Unknown filter:", k)
			return nil
		}
	}

	results := a.store.Search(query, f)
	if len(results) == 0 {
		fmt.Println("No matches")
		return nil
	}
	for i := range results {
		printCheckLine(os.Stdout, &results[i])
	}
	fmt.Printf("%d match(es)\n", len(results))
	return nil
}

func (a *App) StatsCmd(ctx context.Context) error {
	st := a.store.GetStats()
	fmt.Printf("Total: %d  (paid %d, pending %d, cancelled %d)\n",
		st.Total, st.Paid, st.Pending, st.Cancelled)
	fmt.Printf("Due today: %d, due within 7 days: %d\n", st.DueToday, st.DueInWeek)
	fmt.Printf("Totals:   $%s  €%s  ₺%s\n",
		st.TotalUSD.String(), st.TotalEUR.String(), st.TotalTL.String())
	fmt.Printf("Pending:  $%s  €%s  ₺%s\n",
		st.PendingUSD.String(), st.PendingEUR.String(), st.PendingTL.String())
	return nil
}

func (a *App) Upcoming(ctx context.Context, args []string) error {
	days := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("Usage: upcoming [days]")
			return nil
		}
		days = n
	}
	records := a.store.GetUpcoming(days)
	if len(records) == 0 {
		fmt.Println("Nothing due")
		return nil
	}
	for i := range records {
		printCheckLine(os.Stdout, &records[i])
	}
	return nil
}

func (a *App) Overdue(ctx context.Context) error {
	records := a.store.GetOverdue()
	if len(records) == 0 {
		fmt.Println("Nothing overdue")
		return nil
	}
	for i := range records {
		printCheckLine(os.Stdout, &records[i])
	}
	return nil
}
