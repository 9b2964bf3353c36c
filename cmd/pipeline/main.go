package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go-survival-pipeline/internal/model"
	"go-survival-pipeline/internal/pipeline"
	"go-survival-pipeline/internal/store"

	"github.com/google/uuid"
)

// Runs one analysis job synchronously from a job-spec JSON file.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: pipeline <job-spec.json>")
		os.Exit(1)
	}

	specBytes, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read job spec: %v\n", err)
		os.Exit(1)
	}

	var job model.JobSpec
	if err := json.Unmarshal(specBytes, &job); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse job spec: %v\n", err)
		os.Exit(1)
	}

	if err := store.InitDB("survival.db"); err != nil {
		panic(err)
	}

	jobID := uuid.New().String()
	if err := store.SaveJob(jobID, job); err != nil {
		fmt.Fprintf(os.Stderr, "failed to save job: %v\n", err)
		os.Exit(1)
	}

	if err := pipeline.Run(context.Background(), jobID, job); err != nil {
		fmt.Fprintf(os.Stderr, "job %s failed: %v\n", jobID, err)
		os.Exit(1)
	}
}
