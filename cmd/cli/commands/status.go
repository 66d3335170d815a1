package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
	"github.com/rbenali/garrison-duty/pkg/core/services"
)

// LockCmd creates the lock command
func LockCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lock <date>",
		Short: "Validate the roster for a date, freezing it against edits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setStatus(app, args, roster.StatusValidated)
		},
	}
}

// UnlockCmd creates the unlock command
func UnlockCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <date>",
		Short: "Reopen a validated roster for regeneration and replacements",
		Long: "Revert a validated roster to DRAFT. This permits destructive regeneration, " +
			"so it is a separate, deliberate command.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setStatus(app, args, roster.StatusDraft)
		},
	}
}

func setStatus(app *AppContext, args []string, status roster.Status) error {
	date, err := parseDateArg(args)
	if err != nil {
		return err
	}
	result, err := services.SetRosterStatus(app.Ctx, app.Store, app.Logger, date, status)
	if err != nil {
		return err
	}
	fmt.Printf("Roster for %s is now %s\n", result.Date, result.Status)
	return nil
}
