package main

import (
	"go-survival-pipeline/internal/api"
	"go-survival-pipeline/internal/store"
	"go-survival-pipeline/pkg/router"
)

// @title Survival Pipeline API
// @version 1.0
// @description Aggregates per-step hazard predictions into survival curves, event intensities and expected lifetimes, and estimates empirical survival curves from uncensored ages.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Init DB
	if err := store.InitDB("survival.db"); err != nil {
		panic(err)
	}

	// Create router
	r := router.New()

	// Register API routes
	api.RegisterRoutes(r)

	// Start server
	r.Start(":8080")
}
