package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// SaveResultRows persists one derived table for a job, preserving row order
// through the seq column. Returns the number of rows written.
func SaveResultRows(jobID, tableName string, rows []map[string]interface{}) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`INSERT INTO result_rows (job_id, table_name, seq, row_json, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for seq, row := range rows {
		rowJSON, err := json.Marshal(row)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to encode result row %d: %w", seq, err)
		}
		if _, err := stmt.Exec(jobID, tableName, seq, string(rowJSON), now); err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// GetResultRows fetches one derived table for a job in row order.
func GetResultRows(jobID, tableName string) ([]map[string]interface{}, error) {
	dbRows, err := db.Query(`SELECT row_json FROM result_rows WHERE job_id = ? AND table_name = ? ORDER BY seq`,
		jobID, tableName)
	if err != nil {
		return nil, err
	}
	defer dbRows.Close()

	var rows []map[string]interface{}
	for dbRows.Next() {
		var rowJSON string
		if err := dbRows.Scan(&rowJSON); err != nil {
			return nil, err
		}
		var row map[string]interface{}
		if err := json.Unmarshal([]byte(rowJSON), &row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, dbRows.Err()
}

// ListResultTables returns the names of the derived tables stored for a job.
func ListResultTables(jobID string) ([]string, error) {
	dbRows, err := db.Query(`SELECT DISTINCT table_name FROM result_rows WHERE job_id = ? ORDER BY table_name`, jobID)
	if err != nil {
		return nil, err
	}
	defer dbRows.Close()

	var names []string
	for dbRows.Next() {
		var name string
		if err := dbRows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, dbRows.Err()
}
