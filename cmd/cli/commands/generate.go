package commands

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rbenali/garrison-duty/pkg/core/services"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <date>",
		Short: "Generate the duty roster for a date",
		Long: "Run the allocation engine for one date and persist the resulting DRAFT roster. " +
			"Any existing draft for the date is fully replaced; a validated roster must be unlocked first.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateArg(args)
			if err != nil {
				return err
			}
			shuffled, _ := cmd.Flags().GetBool("shuffle")

			app.Logger.Debug("generate command",
				zap.String("date", date.String()),
				zap.Bool("shuffle", shuffled))

			var rng *rand.Rand
			if shuffled {
				rng = rand.New(rand.NewSource(time.Now().UnixNano()))
			}

			result, err := services.GenerateRoster(app.Ctx, app.Store, app.Catalog, app.Logger, date, rng)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			personnel, err := app.Store.ListPersonnel(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch personnel: %w", err)
			}

			fmt.Printf("\nRoster generated for %s (%s)\n\n", result.Date, result.Classification)
			printRoster(result, personnel, app.Catalog)
			for _, warning := range result.Warnings {
				fmt.Printf("⚠️  %s\n", warning)
			}
			return nil
		},
	}

	cmd.Flags().Bool("shuffle", false, "Randomize ties among never-served candidates instead of ordering by id")
	return cmd
}
