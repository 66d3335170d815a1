package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
	"github.com/rbenali/garrison-duty/pkg/core/services"
)

// ShowCmd creates the show command
func ShowCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <date>",
		Short: "Display the stored roster for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateArg(args)
			if err != nil {
				return err
			}
			week, _ := cmd.Flags().GetBool("week")

			personnel, err := app.Store.ListPersonnel(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch personnel: %w", err)
			}

			days := 1
			if week {
				days = 7
			}
			for i := 0; i < days; i++ {
				d := date.AddDays(i)
				result, err := services.GetRoster(app.Ctx, app.Store, d)
				if errors.Is(err, services.ErrRosterNotFound) {
					fmt.Printf("\n%s - no roster\n", d)
					continue
				}
				if err != nil {
					return err
				}
				fmt.Printf("\n%s (%s) - %s\n\n", result.Date, result.Classification, result.Status)
				printRoster(result, personnel, app.Catalog)
			}
			return nil
		},
	}

	cmd.Flags().Bool("week", false, "Display seven consecutive days starting at the date")
	return cmd
}

// printRoster renders a roster for the terminal, one line per slot
func printRoster(r *roster.Roster, personnel []roster.Person, catalog *roster.Catalog) {
	byID := roster.PersonIndex(personnel)
	name := func(id *string) string {
		if id == nil {
			return "VACANT"
		}
		p, ok := byID[*id]
		if !ok {
			return fmt.Sprintf("unknown (%s)", *id)
		}
		initial := ""
		if p.FirstName != "" {
			initial = fmt.Sprintf(" %c.", p.FirstName[0])
		}
		return fmt.Sprintf("%s %s%s", p.Rank, p.LastName, initial)
	}

	fmt.Printf("  Standby officer:  %s\n", name(r.Standby.OfficerID))
	fmt.Printf("  Standby NCO:      %s\n", name(r.Standby.NCOID))
	fmt.Printf("  Police chief:     %s\n", name(r.PoliceStation.ChiefID))
	fmt.Printf("  Police deputy:    %s\n", name(r.PoliceStation.DeputyID))
	for _, s := range r.Specialists {
		fmt.Printf("  %-17s %s\n", s.Specialty+":", name(s.PersonID))
	}
	for _, gp := range r.GuardPoints {
		label := fmt.Sprintf("point %d", gp.PointID)
		if point, ok := catalog.GuardPoint(gp.PointID); ok {
			label = point.Name
		}
		fmt.Printf("  Guard %s:\n", label)
		for i, id := range gp.Sentinels {
			fmt.Printf("    sentinel %d: %s\n", i+1, name(id))
		}
	}
	if len(r.GuardPoints) > 0 && len(catalog.RotationHours) > 0 {
		fmt.Printf("  Rotations start at: %s\n", strings.Join(catalog.RotationHours, ", "))
	}
}
