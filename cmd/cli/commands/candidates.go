package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rbenali/garrison-duty/pkg/core/services"
)

// CandidatesCmd creates the candidates command
func CandidatesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidates <date>",
		Short: "List eligible replacements for a roster slot",
		Long: "Recompute the set of people eligible to take over one slot of the stored roster. " +
			"Manual replacements check availability, exclusivity and rank or specialty, but not fairness.",
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

			app.Logger.Debug("candidates command",
				zap.String("date", date.String()),
				zap.String("slot", slot.String()))

			candidates, err := services.ListReplacementCandidates(
				app.Ctx, app.Store, app.Catalog, app.Logger, date, slot)
			if err != nil {
				return err
			}

			fmt.Printf("\nEligible replacements for %s on %s (%d):\n\n", slot, date, len(candidates))
			for _, p := range candidates {
				fmt.Printf("  %-8s %s %s %s\n", p.ID, p.Rank, p.LastName, p.FirstName)
			}
			if len(candidates) == 0 {
				fmt.Println("  (none)")
			}
			return nil
		},
	}

	addSlotFlags(cmd)
	return cmd
}
