package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/jeovahfialho/banking-frontend/app"
	"github.com/jeovahfialho/banking-frontend/config"
	"github.com/jeovahfialho/banking-frontend/dashboard"
	"github.com/jeovahfialho/banking-frontend/types"
)

func init() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)
}

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	view := flag.String("view", "", "dashboard layout: single|tabbed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if *view != "" {
		cfg.ViewMode = types.ViewMode(*view)
		if err := config.Validate(cfg); err != nil {
			log.Fatalln(err)
		}
	}

	ctx := context.Background()
	term := newTerminal(bufio.NewScanner(os.Stdin), os.Stdout)
	a, err := app.Open(ctx, cfg, dashboard.ConfirmFunc(term.confirm), app.WithNavigationListener(term.onRoute))
	if err != nil {
		log.Fatalln(err)
	}
	defer a.Close()

	if err := a.Start(ctx); err != nil {
		slog.Warn("starting without a stored session", "err", err)
	}
	term.run(ctx, a)
}
