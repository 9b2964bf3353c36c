package pipeline

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go-survival-pipeline/internal/model"
	"go-survival-pipeline/internal/store"
	"go-survival-pipeline/internal/survival"
	"go-survival-pipeline/pkg/utils"
)

// ExportTables writes every result table to the configured targets. File
// exports land under <dir>/<jobID>/<table>.<format>; a non-empty DB target
// persists the rows to the job store so the API can serve them.
func ExportTables(ctx context.Context, jobID string, result *AnalysisResult, export *model.Export) []model.ExportResult {
	var results []model.ExportResult

	if export == nil {
		fmt.Printf("💾 Export: no export configured, %d tables discarded\n", len(result.Tables))
		return results
	}

	format := strings.ToLower(export.Format)
	if format != "json" {
		format = "csv"
	}
	om := utils.NewOutputManager(export.Dir)

	for _, name := range result.TableNames() {
		select {
		case <-ctx.Done():
			return results
		default:
		}

		table := result.Tables[name]

		if export.Dir != "" || export.DB == "" {
			results = append(results, exportToFile(om, jobID, name, format, table))
		}
		if export.DB != "" {
			results = append(results, exportToDatabase(jobID, name, table))
		}
	}

	return results
}

func exportToFile(om *utils.OutputManager, jobID, name, format string, table survival.Table) model.ExportResult {
	result := model.ExportResult{
		Type:       "file",
		Table:      name,
		ExportedAt: time.Now(),
	}

	path, err := om.OutputFilePath(jobID, name, format)
	if err == nil {
		result.Path = path
		switch format {
		case "json":
			result.RecordCount, err = writeJSON(path, jobID, name, table)
		default:
			result.RecordCount, err = writeCSV(path, table)
		}
	}

	result.Success = err == nil
	if err != nil {
		result.Error = err.Error()
		fmt.Printf("❌ Export of %s to file failed: %v\n", name, err)
	} else {
		fmt.Printf("✅ Exported %d %s rows to %s\n", result.RecordCount, name, path)
	}
	return result
}

func exportToDatabase(jobID, name string, table survival.Table) model.ExportResult {
	result := model.ExportResult{
		Type:       "database",
		Table:      name,
		Path:       name,
		ExportedAt: time.Now(),
	}

	count, err := store.SaveResultRows(jobID, name, rowsAsMaps(table))
	result.RecordCount = count
	result.Success = err == nil
	if err != nil {
		result.Error = err.Error()
		fmt.Printf("❌ Export of %s to database failed: %v\n", name, err)
	} else {
		fmt.Printf("✅ Exported %d %s rows to the job store\n", count, name)
	}
	return result
}

// columnOrder returns the union of column names across all rows, sorted for a
// stable header regardless of worker scheduling.
func columnOrder(table survival.Table) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, rec := range table {
		for key := range rec {
			if !seen[key] {
				seen[key] = true
				cols = append(cols, key)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

func writeCSV(path string, table survival.Table) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := columnOrder(table)
	if err := writer.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	recordCount := 0
	for _, rec := range table {
		row := make([]string, len(header))
		for i, key := range header {
			if value, exists := rec[key]; exists {
				row[i] = fmt.Sprintf("%v", value)
			}
		}
		if err := writer.Write(row); err != nil {
			return recordCount, fmt.Errorf("failed to write row: %w", err)
		}
		recordCount++
	}

	return recordCount, nil
}

func writeJSON(path, jobID, name string, table survival.Table) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := map[string]interface{}{
		"export_info": map[string]interface{}{
			"job_id":       jobID,
			"table":        name,
			"exported_at":  time.Now().UTC(),
			"record_count": len(table),
		},
		"data": table,
	}

	if err := encoder.Encode(exportData); err != nil {
		return 0, fmt.Errorf("failed to encode JSON: %w", err)
	}

	return len(table), nil
}

func rowsAsMaps(table survival.Table) []map[string]interface{} {
	rows := make([]map[string]interface{}, len(table))
	for i, rec := range table {
		rows[i] = rec
	}
	return rows
}
