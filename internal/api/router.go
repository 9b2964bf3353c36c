package api

import (
	"go-survival-pipeline/internal/api/handler"
	"go-survival-pipeline/pkg/router"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-survival-pipeline/docs" // generated swagger spec
)

func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/analyses", handler.CreateAnalysis)
	r.GET("/api/v1/analyses", handler.ListAnalyses)
	// More specific routes first
	r.GET("/api/v1/analyses/*/errors", handler.GetAnalysisErrors)
	r.GET("/api/v1/analyses/*/results", handler.GetAnalysisResults)
	r.GET("/api/v1/analyses/*/progress", handler.GetAnalysisProgress)
	// Generic analysis route last
	r.GET("/api/v1/analyses/*", handler.GetAnalysis)

	r.Mount("/swagger/", httpSwagger.WrapHandler)
}
