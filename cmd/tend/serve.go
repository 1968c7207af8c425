package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mkoval/tend/internal/reconcile"
	"github.com/mkoval/tend/internal/web"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON task API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()

			// Startup consistency pass before accepting traffic.
			if _, err := reconcile.Pass(cmd.Context(), store, time.Now()); err != nil {
				return err
			}

			server := web.NewServer(store)
			addr := fmt.Sprintf(":%d", port)
			log.Info().Str("addr", addr).Msg("serving task api")
			return http.ListenAndServe(addr, server.Routes())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	return cmd
}
