package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rbenali/garrison-duty/pkg/api"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for station dashboards",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			handler := &api.Handler{
				Store:   app.Store,
				Catalog: app.Catalog,
				Logger:  app.Logger,
			}
			router := api.NewRouter(handler)

			app.Logger.Info("HTTP API listening", zap.String("addr", addr))
			fmt.Printf("Listening on %s\n", addr)
			if err := http.ListenAndServe(addr, router); err != nil {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	return cmd
}
