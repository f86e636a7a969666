package main

import (
	"github.com/hxuan190/fairsplit/internal/config"
	"github.com/hxuan190/fairsplit/internal/expense"
	"github.com/hxuan190/fairsplit/internal/http"
	"github.com/hxuan190/fairsplit/internal/services"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	container "github.com/thehyperflames/dicontainer-go"
)

// @title Fairsplit API
// @version 1.0
// @description Splits shared expenses between participants with exact, currency aware rounding.
// @description
// @description ## - Methods
// @description - **equal**: everyone pays the same; leftover minimum units go to the first participants
// @description - **weighted**: shares follow participant weights (default weight 1)
// @description - **percentage**: shares follow percentages that must add up to 100
// @description
// @description ## - Guarantees
// @description - Every share is a whole number of the currency's minimum unit (JPY 1, USD 0.01, KWD 0.001, BTC 0.00000001)
// @description - Shares always add up to the amount rounded to the currency precision
// @description - No share is negative and identical requests give identical results
// @description
// @description ## - Limits
// @description - Amount: greater than 0, at most 1,000,000,000, at most 4 decimals
// @description - Participants: 1 to 1000 per split, unique ids
// @description - Batch: at most 100 requests
// @description - **Rate Limit**: 10 requests/second (burst: 20) by default
// @BasePath /
// @schemes https http
// @tag.name splits
// @tag.description Compute, validate, store and fetch expense splits
// @tag.name currencies
// @tag.description Currency precision table

func main() {
	// load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded, using process environment")
	}

	generalConf := &config.GeneralConfig{}
	if err := generalConf.Load(); err != nil {
		log.Error().Err(err).Msg("invalid general config")
		return
	}
	if err := services.ConfigureGlobalLogger(generalConf.LogLevel, generalConf.IsDev()); err != nil {
		log.Error().Err(err).Msg("failed to configure logger")
		return
	}

	// di container config
	conf := container.NewConf(
		generalConf,
		&config.SplitConfig{},
	)

	// di container
	dic, err := container.New(
		// config
		conf,

		// services
		&expense.Service{},

		&http.HTTPService{},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create di container")
		return
	}

	// Run blocks until SIGINT/SIGTERM
	if err := dic.Run(); err != nil {
		log.Error().Err(err).Msg("failed to run di container")
		return
	}

	// Run doesn't call Stop(), we must do it manually
	log.Info().Msg("Shutting down services...")
	if err := dic.Stop(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("Shutdown complete")
}
