package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager handles output file organization for exported result tables
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	if baseOutputDir == "" {
		baseOutputDir = "exports"
	}
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// JobOutputDir creates (if needed) and returns the per-job output directory
func (om *OutputManager) JobOutputDir(jobID string) (string, error) {
	jobDir := filepath.Join(om.BaseOutputDir, jobID)

	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create job output directory: %w", err)
	}

	return jobDir, nil
}

// OutputFilePath generates a full path for one result table file, e.g.
// exports/<jobID>/details.csv
func (om *OutputManager) OutputFilePath(jobID, table, format string) (string, error) {
	jobDir, err := om.JobOutputDir(jobID)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s.%s", filepath.Base(table), strings.ToLower(format))
	return filepath.Join(jobDir, name), nil
}

// FileType determines the export file type based on extension
func FileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	default:
		return "unknown"
	}
}
