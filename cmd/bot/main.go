package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bot/game"
	"bot/shared/configs"
	"bot/shared/logger"
	"bot/storage"
	"bot/transport"
	"bot/web"
)

// repo is whichever store implementation the process runs with.
type repo interface {
	game.Store
	web.Store
}

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(cfg.Debug)

	ctx := context.Background()

	var store repo
	if cfg.MongoURI != "" {
		mongoRepo, err := storage.NewMongoRepo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatal().Err(err).Msg("couldn't connect to mongo")
		}
		defer mongoRepo.Close(ctx)
		store = mongoRepo
	} else {
		log.Warn().Msg("MONGO_URI not set, running with the in-memory store")
		store = storage.NewMemoryRepo()
	}

	engine := game.NewEngine(store)
	gateway := transport.NewGateway(cfg.GatewayURL)
	service := game.NewService(engine, transport.NewSender(gateway))
	gateway.OnUpdate(service.HandleUpdate)

	if cfg.GatewayURL != "" {
		go func() {
			if err := gateway.Run(ctx); err != nil {
				log.Fatal().Err(err).Msg("gateway connection lost")
			}
		}()
	}

	var allowedOrigins []string
	if cfg.FrontendOrigin != "" {
		if cfg.GinMode == "release" {
			allowedOrigins = append(allowedOrigins, "https://"+cfg.FrontendOrigin)
			allowedOrigins = append(allowedOrigins, "https://www."+cfg.FrontendOrigin)
		} else {
			allowedOrigins = append(allowedOrigins, "http://"+cfg.FrontendOrigin)
		}
	}

	gin.SetMode(cfg.GinMode)
	r := web.NewRouter(service, store, allowedOrigins)

	log.Info().Str("addr", cfg.ListenAddr).Msg("api listening")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("couldn't start server")
	}
}
