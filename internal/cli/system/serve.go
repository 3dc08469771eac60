package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address. Overrides server.addr from the config file."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	opts := server.Options{Sessions: ctx.Auth, Clock: ctx.Clock}
	if ctx.Config != nil {
		if addr == "" {
			addr = ctx.Config.Server.Addr
		}
		opts.AllowedOrigins = ctx.Config.Server.AllowedOrigins
	}
	if addr == "" {
		addr = constants.DefaultServerAddr
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go monitor(ctx).Run(sigCtx)

	return server.New(ctx.Store, opts).ListenAndServe(sigCtx, addr)
}
