package main

import (
	"context"
	"log"
	"os"

	"github.com/gokturk078/cektakip/internal/buildinfo"
	"github.com/gokturk078/cektakip/internal/cli"
	"github.com/gokturk078/cektakip/internal/config"
	"github.com/gokturk078/cektakip/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg, logging.NewDefault())
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
