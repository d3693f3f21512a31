package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	bconf "github.com/modelplane/modelplane/pkg/configs/backend"
	"github.com/modelplane/modelplane/pkg/domain/modelplane"
	regpool "github.com/modelplane/modelplane/pkg/domain/registry/pool"
)

func main() {

	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	conf, err := bconf.Load()
	if err != nil {
		panic(err)
	}

	mp, err := modelplane.Default(ctx, conf)
	if err != nil {
		panic(err)
	}

	if err := mp.Database().Schema().Upgrade(ctx); err != nil {
		panic(err)
	}

	go func() {
		if err := regpool.StartSweeper(
			ctx, mp.Registries(), conf.Registry().SweepInterval(),
		); err != nil && err != context.Canceled {
			panic(err)
		}
	}()

	server := BuildServer(mp, *loglevel)
	for _, r := range server.Routes() {
		server.Logger.Debugf("- mount handler: %s %s", strings.ToUpper(r.Method), r.Path)
	}

	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		if err := server.Start(fmt.Sprintf(":%d", conf.Port())); err != nil && err != http.ErrServerClosed {
			ch <- err
		}
	}()

	exit := 0
	select {
	case <-ctx.Done(): // wait
		if err := ctx.Err(); err != nil {
			server.Logger.Infof("context has been done: %s, cause: %s", err, context.Cause(ctx))
			exit = 1
		}
	case err := <-ch:
		if err != nil {
			server.Logger.Error("server stops with error:", err)
			exit = 1
		}
	}

	{
		server.Logger.Info("shutting down...")
		qctx, qcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer qcancel()

		mp.Registries().Close()

		if err := server.Shutdown(qctx); err != nil {
			server.Logger.Fatalf("Shutdown with error. %+v", err)
			os.Exit(1)
		}
		os.Exit(exit)
	}
}
