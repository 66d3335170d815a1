package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/rbenali/garrison-duty/internal/config"
	"github.com/rbenali/garrison-duty/pkg/core/roster"
	"github.com/rbenali/garrison-duty/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg     *config.Config
	Catalog *roster.Catalog
	Store   db.Database
	Logger  *zap.Logger
	Ctx     context.Context
}
