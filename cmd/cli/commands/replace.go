package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rbenali/garrison-duty/pkg/core/services"
)

// ReplaceCmd creates the replace command
func ReplaceCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace <date>",
		Short: "Manually replace the occupant of a roster slot",
		Long: "Write a new person into one slot of the stored roster. Eligibility is re-checked at " +
			"commit time and the roster always reverts to DRAFT.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateArg(args)
			if err != nil {
				return err
			}
			slot, err := slotFromFlags(cmd)
			if err != nil {
				return err
			}
			personID, _ := cmd.Flags().GetString("person")

			app.Logger.Debug("replace command",
				zap.String("date", date.String()),
				zap.String("slot", slot.String()),
				zap.String("person_id", personID))

			result, err := services.ApplyReplacement(
				app.Ctx, app.Store, app.Catalog, app.Logger, date, slot, personID)
			if err != nil {
				return fmt.Errorf("replacement failed: %w", err)
			}

			personnel, err := app.Store.ListPersonnel(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch personnel: %w", err)
			}
			fmt.Printf("\nReplacement applied; roster for %s is back to %s\n\n", result.Date, result.Status)
			printRoster(result, personnel, app.Catalog)
			return nil
		},
	}

	addSlotFlags(cmd)
	cmd.Flags().String("person", "", "Id of the replacement person")
	cmd.MarkFlagRequired("person")
	return cmd
}
