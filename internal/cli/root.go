package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return "(in)"
	}
	return ""
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Check tracker CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("cek %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Println("Bye!")
			return
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				fmt.Println("Available commands: login, exit")
			case "login":
				_ = a.Login(ctx)
			default:
				fmt.Println("Please login first")
			}
			continue
		}

		switch cmd {
		case "help":
			fmt.Println("Available commands: (l)ist, get, add, update, delete, search,")
			fmt.Println("  stats, upcoming, overdue, sweep, banks, bankadd, bankrm,")
			fmt.Println("  export, import, remind, logout, exit")
		case "login":
			_ = a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "l", "list":
			_ = a.List(ctx, args)
		case "get":
			_ = a.Get(ctx, args)
		case "add":
			_ = a.Add(ctx)
		case "update":
			_ = a.Update(ctx, args)
		case "delete":
			_ = a.Delete(ctx, args)
		case "search":
			_ = a.SearchCmd(ctx, args)
		case "stats":
			_ = a.StatsCmd(ctx)
		case "upcoming":
			_ = a.Upcoming(ctx, args)
		case "overdue":
			_ = a.Overdue(ctx)
		case "sweep":
			_ = a.Sweep(ctx)
		case "banks":
			_ = a.BanksCmd(ctx)
		case "bankadd":
			_ = a.BankAdd(ctx, args)
		case "bankrm":
			_ = a.BankRemove(ctx, args)
		case "export":
			_ = a.Export(ctx, args)
		case "import":
			_ = a.Import(ctx, args)
		case "remind":
			_ = a.Remind(ctx)
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
