package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/gokturk078/cektakip/internal/notify"
)

// Remind prints the reminder buckets for pending records due today and in
// three and seven days, and dispatches a summary email when a mailer is
// configured.
func (a *App) Remind(ctx context.Context) error {
	r := notify.Plan(a.store.GetAll(), time.Now())
	if r.Empty() {
		fmt.Println("Nothing coming due")
		return nil
	}

	fmt.Print(notify.ComposeBody(r))

	if a.notifier == nil {
		fmt.Println("Email reminders are not configured")
		return nil
	}
	if err := a.notifier.Dispatch(ctx, r); err != nil {
		fmt.Println("Error sending reminder email:", err)
		return err
	}
	fmt.Println("Reminder email sent")
	return nil
}
