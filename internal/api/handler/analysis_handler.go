package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go-survival-pipeline/internal/model"
	"go-survival-pipeline/internal/pipeline"
	"go-survival-pipeline/internal/store"
	"go-survival-pipeline/pkg/utils"

	"github.com/google/uuid"
)

const pathPrefix = "/api/v1/analyses/"

// jobIDFromPath extracts the job ID between the prefix and an optional suffix.
func jobIDFromPath(path, suffix string) string {
	if !strings.HasPrefix(path, pathPrefix) || !strings.HasSuffix(path, suffix) {
		return ""
	}
	return path[len(pathPrefix) : len(path)-len(suffix)]
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// CreateAnalysis creates a new survival analysis job
// @Summary Create a new analysis
// @Description Submit a survival analysis job: data sources plus hazard-aggregation and/or empirical-survival configuration. The job runs asynchronously.
// @Tags analyses
// @Accept json
// @Produce json
// @Param analysis body model.JobSpec true "Analysis job configuration"
// @Success 200 {object} map[string]interface{} "Analysis created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses [post]
func CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var job model.JobSpec
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if len(job.Sources) == 0 {
		http.Error(w, "At least one source is required", http.StatusBadRequest)
		return
	}
	if job.Analysis.Hazard == nil && job.Analysis.Empirical == nil {
		http.Error(w, "At least one analysis (hazard or empirical) is required", http.StatusBadRequest)
		return
	}

	jobID := uuid.New().String()

	if err := store.SaveJob(jobID, job); err != nil {
		http.Error(w, "Failed to save job", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), utils.ParseDuration(job.Concurrency.JobTimeout))

	go func() {
		defer cancel()
		if err := pipeline.Run(ctx, jobID, job); err != nil {
			store.SaveJobError(jobID, err)
		}
	}()

	writeJSON(w, map[string]interface{}{
		"message":   "Analysis created successfully!",
		"jobID":     jobID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	})
}

// ListAnalyses retrieves all analysis jobs
// @Summary List all analyses
// @Description Get a list of all analysis jobs with their current status
// @Tags analyses
// @Produce json
// @Success 200 {array} map[string]interface{} "List of analyses"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses [get]
func ListAnalyses(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListJobs()
	if err != nil {
		http.Error(w, "Failed to fetch analyses", http.StatusInternalServerError)
		return
	}
	writeJSON(w, jobs)
}

// GetAnalysis retrieves a specific analysis job
// @Summary Get analysis
// @Description Retrieve spec and status of a specific analysis job
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis details"
// @Failure 400 {object} map[string]interface{} "Invalid analysis ID"
// @Failure 404 {object} map[string]interface{} "Analysis not found"
// @Router /analyses/{id} [get]
func GetAnalysis(w http.ResponseWriter, r *http.Request) {
	jobID := jobIDFromPath(r.URL.Path, "")
	if jobID == "" {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return
	}

	job, err := store.GetJob(jobID)
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, job)
}

// GetAnalysisErrors retrieves errors for an analysis job
// @Summary Get analysis errors
// @Description Retrieve all errors recorded during an analysis run
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis errors"
// @Failure 400 {object} map[string]interface{} "Invalid analysis ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses/{id}/errors [get]
func GetAnalysisErrors(w http.ResponseWriter, r *http.Request) {
	jobID := jobIDFromPath(r.URL.Path, "/errors")
	if jobID == "" {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return
	}

	errs, err := store.GetJobErrors(jobID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{
		"job_id": jobID,
		"errors": errs,
		"count":  len(errs),
	})
}

// GetAnalysisResults retrieves a derived result table for an analysis job
// @Summary Get analysis results
// @Description Retrieve one derived table (details, expected_lifetime or empirical_survival) for an analysis job. Without a table parameter, lists the stored tables.
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Param table query string false "Result table name"
// @Success 200 {object} map[string]interface{} "Analysis results"
// @Failure 400 {object} map[string]interface{} "Invalid analysis ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses/{id}/results [get]
func GetAnalysisResults(w http.ResponseWriter, r *http.Request) {
	jobID := jobIDFromPath(r.URL.Path, "/results")
	if jobID == "" {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return
	}

	table := r.URL.Query().Get("table")
	if table == "" {
		tables, err := store.ListResultTables(jobID)
		if err != nil {
			http.Error(w, "Failed to retrieve results", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]interface{}{
			"job_id": jobID,
			"tables": tables,
		})
		return
	}

	rows, err := store.GetResultRows(jobID, table)
	if err != nil {
		http.Error(w, "Failed to retrieve results", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{
		"job_id": jobID,
		"table":  table,
		"rows":   rows,
		"count":  len(rows),
	})
}

// GetAnalysisProgress retrieves per-stage progress for an analysis job
// @Summary Get analysis progress
// @Description Retrieve the stage-by-stage progress history of an analysis job
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis progress"
// @Failure 400 {object} map[string]interface{} "Invalid analysis ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses/{id}/progress [get]
func GetAnalysisProgress(w http.ResponseWriter, r *http.Request) {
	jobID := jobIDFromPath(r.URL.Path, "/progress")
	if jobID == "" {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return
	}

	stages, err := store.GetStageProgress(jobID)
	if err != nil {
		http.Error(w, "Failed to retrieve progress", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{
		"job_id": jobID,
		"stages": stages,
	})
}
