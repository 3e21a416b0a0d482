// Package main runs the bookkeeping API to manage users, accounts and money transfers.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/finvault/bookkeeper/cmd/httpserver"
	"github.com/finvault/bookkeeper/internal/middleware"
	"github.com/finvault/bookkeeper/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	server, err := httpserver.New(logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("BOOKKEEPER API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
