package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
)

// StatusStore defines the database operations needed for lifecycle
// transitions
type StatusStore interface {
	GetRoster(ctx context.Context, date roster.Date) (*roster.Roster, error)
	SaveRoster(ctx context.Context, r *roster.Roster) error
}

// SetRosterStatus performs an explicit lifecycle transition on the stored
// roster for a date. Locking (DRAFT to VALIDATED) freezes the roster
// against regeneration and replacements; unlocking is the deliberate,
// separately confirmed reverse. Slot contents are never touched.
func SetRosterStatus(
	ctx context.Context,
	store StatusStore,
	logger *zap.Logger,
	date roster.Date,
	status roster.Status,
) (*roster.Roster, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid roster status %q", status)
	}

	r, err := GetRoster(ctx, store, date)
	if err != nil {
		return nil, err
	}

	switch status {
	case roster.StatusValidated:
		r.Lock()
	case roster.StatusDraft:
		r.Unlock()
	}

	if err := store.SaveRoster(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save roster for %s: %w", date, err)
	}

	logger.Info("Roster status changed",
		zap.String("date", date.String()),
		zap.String("status", string(status)))

	return r, nil
}
