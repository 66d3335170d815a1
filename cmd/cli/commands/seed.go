package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
)

type seedPerson struct {
	ID                 string   `yaml:"id"`
	FirstName          string   `yaml:"firstName"`
	LastName           string   `yaml:"lastName"`
	Rank               string   `yaml:"rank"`
	Specialties        []string `yaml:"specialties"`
	MedicalRestriction bool     `yaml:"medicalRestriction"`
	Exempt             bool     `yaml:"exempt"`
}

type seedAbsence struct {
	ID       string `yaml:"id"`
	PersonID string `yaml:"personId"`
	Category string `yaml:"category"`
	Start    string `yaml:"startDate"`
	End      string `yaml:"endDate"`
	Note     string `yaml:"note"`
}

type seedFile struct {
	Personnel []seedPerson  `yaml:"personnel"`
	Absences  []seedAbsence `yaml:"absences"`
}

// SeedCmd creates the seed command
func SeedCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load personnel and absences from a YAML fixtures file",
		Long: "Replace the stored personnel roster and absence records with the contents of a " +
			"fixtures file. Existing duty rosters are kept.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read fixtures file: %w", err)
			}
			var fixtures seedFile
			if err := yaml.Unmarshal(data, &fixtures); err != nil {
				return fmt.Errorf("failed to parse fixtures file: %w", err)
			}

			personnel := make([]roster.Person, 0, len(fixtures.Personnel))
			for _, p := range fixtures.Personnel {
				if p.ID == "" || p.Rank == "" {
					return fmt.Errorf("person %q %q is missing an id or rank", p.FirstName, p.LastName)
				}
				personnel = append(personnel, roster.Person{
					ID:                 p.ID,
					FirstName:          p.FirstName,
					LastName:           p.LastName,
					Rank:               p.Rank,
					Specialties:        p.Specialties,
					MedicalRestriction: p.MedicalRestriction,
					Exempt:             p.Exempt,
				})
			}

			absences := make([]roster.AbsenceRecord, 0, len(fixtures.Absences))
			for _, a := range fixtures.Absences {
				start, err := roster.ParseDate(a.Start)
				if err != nil {
					return fmt.Errorf("absence for %s: %w", a.PersonID, err)
				}
				end, err := roster.ParseDate(a.End)
				if err != nil {
					return fmt.Errorf("absence for %s: %w", a.PersonID, err)
				}
				id := a.ID
				if id == "" {
					id = uuid.NewString()
				}
				absences = append(absences, roster.AbsenceRecord{
					ID:       id,
					PersonID: a.PersonID,
					Category: roster.AbsenceCategory(a.Category),
					Start:    start,
					End:      end,
					Note:     a.Note,
				})
			}

			if err := app.Store.ReplacePersonnel(app.Ctx, personnel); err != nil {
				return fmt.Errorf("failed to store personnel: %w", err)
			}
			if err := app.Store.ReplaceAbsences(app.Ctx, absences); err != nil {
				return fmt.Errorf("failed to store absences: %w", err)
			}

			app.Logger.Info("Fixtures loaded",
				zap.Int("personnel", len(personnel)),
				zap.Int("absences", len(absences)))
			fmt.Printf("Loaded %d personnel and %d absence records\n", len(personnel), len(absences))
			return nil
		},
	}
}
