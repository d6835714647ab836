package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arborlab/phylograph/internal/api"
)

// defaultAddr is the default listen address for the HTTP API.
const defaultAddr = ":8080"

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the phylograph HTTP API",
		Long: `Start the HTTP API.

The API exposes the render pipeline (POST /render) and the graph store
(GET/POST/DELETE /graphs) over HTTP. The cache and store backends come
from the config file. The server shuts down gracefully on SIGINT.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			st, err := c.newStore(cmd)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			logger := loggerFromContext(cmd.Context())
			server := api.New(runner, st, logger)
			return server.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
