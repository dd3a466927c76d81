package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/sociogram/backend/internal/reconcile"
	"github.com/sociogram/backend/internal/router"
	"github.com/sociogram/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, db.Redis, cfg.JWTSecret); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Counter reconciliation safety net, disabled unless configured
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reconcile.New(db.Postgres, cfg.ReconcileInterval).Run(ctx)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
