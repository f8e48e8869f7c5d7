package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gokturk078/cektakip/internal/common"
	"github.com/gokturk078/cektakip/internal/models"
)

// Export writes the full record set to a JSON file with an export timestamp.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: export <file>")
		return nil
	}
	data, err := json.MarshalIndent(a.store.ExportSnapshot(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], data, 0o600); err != nil {
		fmt.Println("Error writing file:", err)
		return err
	}
	fmt.Println("Exported to", args[0])
	return nil
}

// Import replaces the whole record set with the contents of a snapshot file.
// If the subsequent save fails the in-memory replacement is kept; the next
// successful save persists it.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: import <file>")
		return nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println("Error reading file:", err)
		return err
	}
	snap, err := models.ParseSnapshot(data)
	if err != nil {
		if errors.Is(err, common.ErrMalformedSnapshot) {
			fmt.Println("File is not a valid snapshot")
			return err
		}
		fmt.Println("Error parsing file:", err)
		return err
	}
	if err := a.store.ImportSnapshot(ctx, *snap); err != nil {
		reportPersistFailure(err)
		return err
	}
	fmt.Printf("Imported %d record(s)\n", len(snap.Checks))
	return nil
}
