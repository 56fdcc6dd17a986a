package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/bloodconnect/internal/buildinfo"
	"github.com/dmitrijs2005/bloodconnect/internal/client/cli"
	"github.com/dmitrijs2005/bloodconnect/internal/client/config"
	"github.com/dmitrijs2005/bloodconnect/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
