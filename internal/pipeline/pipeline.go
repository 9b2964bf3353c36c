package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go-survival-pipeline/internal/model"
	"go-survival-pipeline/internal/store"
	"go-survival-pipeline/internal/survival"
	"go-survival-pipeline/pkg/utils"
)

// ------------------- Pipeline Runner -------------------

// Run executes one analysis job end to end: ingest all sources into a
// materialized table, validate the whole table, run the survival aggregations
// as a single synchronous batch, then export the derived tables. A job either
// fully succeeds or fails with the first error; there is no partial mode.
func Run(ctx context.Context, jobID string, job model.JobSpec) (err error) {
	start := time.Now()
	fmt.Printf("🚀 Starting analysis job: %s\n", jobID)

	store.UpdateJobStatus(jobID, "running")

	defer func() {
		if err != nil {
			store.UpdateJobStatus(jobID, "failed")
			store.SaveJobError(jobID, err)
		}
	}()

	timeout := utils.ParseDuration(job.Concurrency.JobTimeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	bufSize := job.Concurrency.ChannelBufferSize
	if bufSize == 0 {
		bufSize = 100
	}
	recordsCh := make(chan survival.Record, bufSize)
	errorCh := make(chan error, bufSize)

	// --- ERROR COLLECTOR ---
	var ingestErr error
	var errWg sync.WaitGroup
	errWg.Add(1)
	go func() {
		defer errWg.Done()
		for e := range errorCh {
			log.Printf("❌ Error in job %s: %v\n", jobID, e)
			if ingestErr == nil {
				ingestErr = e
			}
		}
	}()

	// --- INGESTION STAGE ---
	ingestStart := time.Now()
	store.UpdateJobStatus(jobID, "ingesting")
	store.SaveStageProgress(jobID, "ingestion", "started", ingestStart, nil, 0)

	go func() {
		StartIngestion(ctx, job.Sources, job.Concurrency.Workers.Ingest, recordsCh, errorCh)
		close(recordsCh) // safe: only this goroutine closes recordsCh
	}()

	// Materialize the full table; aggregation is batch, not streaming.
	var rows survival.Table
	for rec := range recordsCh {
		rows = append(rows, rec)
	}
	close(errorCh)
	errWg.Wait()

	ingestEnd := time.Now()
	store.SaveStageProgress(jobID, "ingestion", "completed", ingestStart, &ingestEnd, len(rows))
	fmt.Printf("📄 Ingestion complete: %d records from %d sources\n", len(rows), len(job.Sources))

	if ingestErr != nil {
		return fmt.Errorf("ingestion failed: %w", ingestErr)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("job cancelled during ingestion: %w", err)
	}

	// --- VALIDATION STAGE ---
	validateStart := time.Now()
	store.UpdateJobStatus(jobID, "validating")
	store.SaveStageProgress(jobID, "validation", "started", validateStart, nil, 0)

	if err := ValidateTable(rows, job.Analysis); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	validateEnd := time.Now()
	store.SaveStageProgress(jobID, "validation", "completed", validateStart, &validateEnd, len(rows))
	fmt.Println("🔍 Validation stage complete.")

	// --- AGGREGATION STAGE ---
	aggStart := time.Now()
	store.UpdateJobStatus(jobID, "aggregating")
	store.SaveStageProgress(jobID, "aggregation", "started", aggStart, nil, 0)

	workers := job.Concurrency.Workers.Aggregation
	if workers == 0 {
		workers = 2 // default
	}

	result, err := RunAnalysis(rows, job.Analysis, workers)
	if err != nil {
		return err
	}

	resultRows := 0
	for _, name := range result.TableNames() {
		resultRows += len(result.Tables[name])
	}
	aggEnd := time.Now()
	store.SaveStageProgress(jobID, "aggregation", "completed", aggStart, &aggEnd, resultRows)
	fmt.Println("📊 Aggregation stage complete.")

	// --- EXPORT STAGE ---
	exportStart := time.Now()
	store.UpdateJobStatus(jobID, "exporting")
	store.SaveStageProgress(jobID, "export", "started", exportStart, nil, 0)

	exportCount := 0
	for _, res := range ExportTables(ctx, jobID, result, job.Export) {
		exportCount++
		if !res.Success {
			return fmt.Errorf("export of %s failed: %s", res.Table, res.Error)
		}
	}

	exportEnd := time.Now()
	store.SaveStageProgress(jobID, "export", "completed", exportStart, &exportEnd, exportCount)
	fmt.Printf("💾 Export Summary: %d export operations completed\n", exportCount)

	duration := time.Since(start)
	fmt.Printf("🏁 Analysis job %s completed in %v\n", jobID, duration)

	store.UpdateJobStatus(jobID, "completed")
	return nil
}
