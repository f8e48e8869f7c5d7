package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) BanksCmd(ctx context.Context) error {
	banks, err := a.store.Banks(ctx)
	if err != nil {
		fmt.Println("Error listing banks:", err)
		return err
	}
	for _, b := range banks {
		fmt.Println(b)
	}
	return nil
}

func (a *App) BankAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: bankadd <name>")
		return nil
	}
	name, err := a.store.AddCustomBank(ctx, strings.Join(args, " "))
	if err != nil {
		fmt.Println("Error adding bank:", err)
		return err
	}
	fmt.Println("Added", name)
	return nil
}

func (a *App) BankRemove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: bankrm <name>")
		return nil
	}
	removed, err := a.store.RemoveCustomBank(ctx, strings.Join(args, " "))
	if err != nil {
		fmt.Println("Error removing bank:", err)
		return err
	}
	if !removed {
		fmt.Println("Not found")
		return nil
	}
	fmt.Println("Removed")
	return nil
}
