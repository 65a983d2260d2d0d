package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vugu/pagerouter/spaserve"
)

func serveCmd() *cobra.Command {

	var (
		cfg   spaserve.Config
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a built app, answering unknown page paths with index.html",
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg.Logger = newLogger(quiet)

			return spaserve.New(cfg).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&cfg.Dir, "dir", "d", ".", "Directory holding the built app")
	cmd.Flags().StringVarP(&cfg.Addr, "addr", "a", spaserve.DefaultAddr, "Listen address")
	cmd.Flags().StringVar(&cfg.Index, "index", spaserve.DefaultIndex, "File served for client-side routes")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print information upon error")

	return cmd
}
