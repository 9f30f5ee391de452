package main

import (
	"errors"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/minaorangina/wizard/config"
	"github.com/minaorangina/wizard/server"
	"github.com/minaorangina/wizard/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatal(err.Error())
	}
	defer logger.Sync()

	s := server.NewServer(store.NewInMemoryGameStore(), cfg, logger)
	logger.Info("listening", zap.String("addr", s.Addr))
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
