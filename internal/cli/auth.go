package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/gokturk078/cektakip/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for the dashboard password and, when it verifies, stores a
// session token on the App. The password bytes are wiped before returning.
func (a *App) Login(ctx context.Context) error {
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.auth.Login(password)
	if err != nil {
		fmt.Println("Login failed: wrong password")
		return err
	}

	a.session = token
	fmt.Println("Success!")
	return nil
}

// Logout drops the in-memory session token.
func (a *App) Logout(ctx context.Context) {
	a.session = ""
	fmt.Println("Logged out")
}
