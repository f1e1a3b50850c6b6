package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"loja/api"
	"loja/internal/catalog"
	"loja/internal/clients"
	"loja/internal/config"
	"loja/internal/database"
	"loja/internal/migrations"
	"loja/internal/sales"
	"loja/internal/suppliers"
	"loja/internal/users"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	productStorage := catalog.NewPostgresStorage(db)
	clientStorage := clients.NewPostgresStorage(db)
	supplierStorage := suppliers.NewPostgresStorage(db)
	userStorage := users.NewPostgresStorage(db)
	ledger := sales.NewPostgresLedger(db)
	salesService := sales.NewService(ledger, productStorage, clientStorage, logger)

	r := gin.Default()
	api.InitRoutes(r, api.Dependencies{
		Products:  productStorage,
		Clients:   clientStorage,
		Suppliers: supplierStorage,
		Users:     userStorage,
		Sales:     salesService,
		Secret:    cfg.Secret,
		Logger:    logger,
	})

	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
