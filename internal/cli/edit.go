package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gokturk078/cektakip/internal/common"
	"github.com/gokturk078/cektakip/internal/models"
)

// reportPersistFailure tells the user the write failed and that the local
// change was rolled back, mapping the cause to a readable message.
func reportPersistFailure(err error) {
	var pe *common.PersistenceError
	if errors.As(err, &pe) {
		fmt.Println("Save failed:", pe.UserMessage())
		return
	}
	fmt.Println("Save failed:", err)
}

func promptAmount(a *App) (usd, eur, tl *models.Amount, err error) {
	cur, err := getSimpleText(a.reader, "Currency (USD/EUR/TL)", os.Stdout)
	if err != nil {
		return nil, nil, nil, err
	}
	raw, err := getSimpleText(a.reader, "Amount", os.Stdout)
	if err != nil {
		return nil, nil, nil, err
	}
	amt, err := models.NewAmount(raw)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid amount %q", raw)
	}
	switch strings.ToUpper(cur) {
	case "USD":
		return amt, nil, nil, nil
	case "EUR":
		return nil, amt, nil, nil
	case "TL", "TRY", "":
		return nil, nil, amt, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown currency %q", cur)
	}
}

// Add interactively collects a new record and saves it. On persistence
// failure the record is rolled back and never appears in listings.
func (a *App) Add(ctx context.Context) error {
	company, err := getSimpleText(a.reader, "Company name", os.Stdout)
	if err != nil {
		return err
	}
	checkNo, err := getSimpleText(a.reader, "Check number", os.Stdout)
	if err != nil {
		return err
	}
	bank, err := getSimpleText(a.reader, "Bank", os.Stdout)
	if err != nil {
		return err
	}
	issue, err := getSimpleText(a.reader, "Issue date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	due, err := getSimpleText(a.reader, "Due date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	usd, eur, tl, err := promptAmount(a)
	if err != nil {
		fmt.Println(err)
		return nil
	}

	draft := models.Check{
		CompanyName: company,
		CheckNumber: checkNo,
		BankName:    bank,
		IssueDate:   issue,
		DueDate:     due,
		USD:         usd,
		EUR:         eur,
		TL:          tl,
	}

	saved, err := a.store.Add(ctx, draft)
	if err != nil {
		reportPersistFailure(err)
		return err
	}
	fmt.Printf("Added record %d\n", saved.ID)
	return nil
}

// Update edits a record field by field; empty input keeps the current value.
func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: update <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Invalid id:", args[0])
		return nil
	}
	current := a.store.GetByID(id)
	if current == nil {
		fmt.Println("Not found")
		return nil
	}
	printCheckDetail(os.Stdout, current)

	var patch models.Patch
	if v, ok, err := GetOptionalText(a.reader, "Company name", os.Stdout); err != nil {
		return err
	} else if ok {
		patch.CompanyName = &v
	}
	if v, ok, err := GetOptionalText(a.reader, "Check number", os.Stdout); err != nil {
		return err
	} else if ok {
		patch.CheckNumber = &v
	}
	if v, ok, err := GetOptionalText(a.reader, "Bank", os.Stdout); err != nil {
		return err
	} else if ok {
		patch.BankName = &v
	}
	if v, ok, err := GetOptionalText(a.reader, "Issue date (YYYY-MM-DD)", os.Stdout); err != nil {
		return err
	} else if ok {
		patch.IssueDate = &v
	}
	if v, ok, err := GetOptionalText(a.reader, "Due date (YYYY-MM-DD)", os.Stdout); err != nil {
		return err
	} else if ok {
		patch.DueDate = &v
	}
	if v, ok, err := GetOptionalText(a.reader, "Status (ÖDENDİ/BEKLEMEDE/İPTAL EDİLDİ)", os.Stdout); err != nil {
		return err
	} else if ok {
		st := models.Status(v)
		patch.Status = &st
	}

	updated, err := a.store.Update(ctx, id, patch)
	if err != nil {
		reportPersistFailure(err)
		return err
	}
	if updated == nil {
		fmt.Println("Not found")
		return nil
	}
	fmt.Println("Updated")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: delete <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Invalid id:", args[0])
		return nil
	}
	removed, err := a.store.Delete(ctx, id)
	if err != nil {
		reportPersistFailure(err)
		return err
	}
	if !removed {
		fmt.Println("Not found")
		return nil
	}
	fmt.Println("Deleted")
	return nil
}

// Sweep marks overdue pending records as paid and persists the result.
func (a *App) Sweep(ctx context.Context) error {
	n, err := a.store.SweepAutoStatus(ctx)
	if err != nil {
		reportPersistFailure(err)
		return err
	}
	fmt.Printf("Updated %d record(s)\n", n)
	return nil
}
