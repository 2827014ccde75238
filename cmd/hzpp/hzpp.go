package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/hzpp/hzpp/pkg/api"
	"github.com/hzpp/hzpp/pkg/journeyplan"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("HZPP_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("HZPP_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "hzpp",
		Description: "Journey search, schedule reconstruction and live train info for the HŽPP network",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			journeyplan.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
