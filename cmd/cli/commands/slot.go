package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
)

// addSlotFlags registers the flags that designate one roster slot
func addSlotFlags(cmd *cobra.Command) {
	cmd.Flags().String("slot", "", "Slot kind: police_chief, police_deputy, standby_officer, standby_nco, specialist, sentinel")
	cmd.Flags().String("specialty", "", "Specialty name (specialist slots)")
	cmd.Flags().Int("point", 0, "Guard point id (sentinel slots)")
	cmd.Flags().Int("index", 0, "Slot index: specialist position or sentinel position 0-2")
	cmd.MarkFlagRequired("slot")
}

// slotFromFlags builds the SlotRef a command addresses
func slotFromFlags(cmd *cobra.Command) (roster.SlotRef, error) {
	kind, _ := cmd.Flags().GetString("slot")
	specialty, _ := cmd.Flags().GetString("specialty")
	point, _ := cmd.Flags().GetInt("point")
	index, _ := cmd.Flags().GetInt("index")

	ref := roster.SlotRef{
		Kind:      roster.SlotKind(kind),
		Specialty: specialty,
		PointID:   point,
		Index:     index,
	}
	switch ref.Kind {
	case roster.SlotPoliceChief, roster.SlotPoliceDeputy,
		roster.SlotStandbyOfficer, roster.SlotStandbyNCO:
	case roster.SlotSpecialist:
		if specialty == "" {
			return ref, fmt.Errorf("--specialty is required for specialist slots")
		}
	case roster.SlotSentinel:
		if point <= 0 {
			return ref, fmt.Errorf("--point is required for sentinel slots")
		}
	default:
		return ref, fmt.Errorf("unknown slot kind %q", kind)
	}
	return ref, nil
}

func parseDateArg(args []string) (roster.Date, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one date argument (YYYY-MM-DD)")
	}
	return roster.ParseDate(args[0])
}
