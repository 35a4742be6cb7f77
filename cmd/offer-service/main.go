package main

import (
	"fmt"
	"os"

	"github.com/nurpe/estate-offers/internal/assets"
	"github.com/nurpe/estate-offers/internal/config"
	"github.com/nurpe/estate-offers/internal/db"
	"github.com/nurpe/estate-offers/internal/excel"
	httphandler "github.com/nurpe/estate-offers/internal/http"
	"github.com/nurpe/estate-offers/internal/logger"
	"github.com/nurpe/estate-offers/internal/maps"
	"github.com/nurpe/estate-offers/internal/pdf"
	"github.com/nurpe/estate-offers/internal/repository"
	"github.com/nurpe/estate-offers/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	offerRepo := repository.NewOfferRepository(database)
	assetLoader := assets.NewLoader(cfg.Assets.StorageRoot, cfg.Assets.Timeout, log)
	imagery := maps.NewClient(cfg.Maps.Token, cfg.Maps.BaseURL, cfg.Maps.Timeout, log)

	pdfGenerator := pdf.NewGenerator(assetLoader, imagery, log)
	excelGenerator := excel.NewGenerator()

	offerService := service.NewOfferService(offerRepo, pdfGenerator, excelGenerator)

	handler := httphandler.NewHandler(offerService, log)
	router := httphandler.NewRouter(handler, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting offer service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
