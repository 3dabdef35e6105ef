package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gemtrack/gemtrack/config"
	"github.com/gemtrack/gemtrack/internal/adminapi"
	"github.com/gemtrack/gemtrack/internal/app"
	"github.com/gemtrack/gemtrack/internal/webserver"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema")
	printcfg = flag.Bool("printcfg", false, "print the effective config and exit")
)

const version = "gemtrack 1.0.0"

func main() {
	flag.Parse()

	if *h {
		flag.Usage()
		return
	}
	if *showVer {
		fmt.Println(version)
		return
	}

	cfg, err := config.LoadConfig(*conffile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if *printcfg {
		out, _ := yaml.Marshal(cfg.Redacted())
		fmt.Println(string(out))
		return
	}

	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init application: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	if *initdb {
		if err := application.InitDb(); err != nil {
			zap.L().Fatal("init database failed", zap.Error(err))
		}
		zap.L().Info("database schema recreated")
		return
	}

	srv, err := webserver.NewAdminServer(application)
	if err != nil {
		zap.L().Fatal("create admin server failed", zap.Error(err))
	}
	adminapi.Init(srv)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-quit:
		zap.S().Infof("received %s, shutting down", sig)
	case err := <-errCh:
		if err != nil {
			zap.L().Error("admin server stopped", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("shutdown admin server", zap.Error(err))
	}
}
