package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"go-survival-pipeline/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens the sqlite database and creates the schema if needed.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			spec TEXT,
			status TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS job_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS stage_progress (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			stage TEXT,
			status TEXT,
			started_at DATETIME,
			ended_at DATETIME,
			records INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS result_rows (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			table_name TEXT,
			seq INTEGER,
			row_json TEXT,
			created_at DATETIME
		);`,
		`CREATE INDEX IF NOT EXISTS idx_result_rows_job_table
			ON result_rows (job_id, table_name, seq);`,
	}

	for _, stmt := range tables {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// SaveJob stores a new analysis job
func SaveJob(jobID string, spec model.JobSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO jobs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		jobID, specJSON, "pending", now, now)
	return err
}

// SaveJobError records an error for a job
func SaveJobError(jobID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO job_errors (job_id, error_message, created_at) VALUES (?, ?, ?)`,
		jobID, err.Error(), now)
	return e
}

// GetJobErrors returns all recorded errors for a job
func GetJobErrors(jobID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM job_errors WHERE job_id = ? ORDER BY created_at`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errs []map[string]interface{}
	for rows.Next() {
		var msg string
		var createdAt time.Time
		if err := rows.Scan(&msg, &createdAt); err != nil {
			return nil, err
		}
		errs = append(errs, map[string]interface{}{
			"error":     msg,
			"createdAt": createdAt,
		})
	}
	return errs, rows.Err()
}

// ListJobs returns all jobs with basic info
func ListJobs() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return jobs, rows.Err()
}

// GetJob fetches full job spec and status
func GetJob(jobID string) (map[string]interface{}, error) {
	var specJSON string
	var status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM jobs WHERE id = ?`, jobID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.JobSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        jobID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// UpdateJobStatus updates job status
func UpdateJobStatus(jobID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE jobs SET status = ?, updated_at = ? WHERE id = ?`, status, now, jobID)
	return err
}

// SaveStageProgress records the lifecycle of one pipeline stage
func SaveStageProgress(jobID, stage, status string, startedAt time.Time, endedAt *time.Time, records int) error {
	_, err := db.Exec(`INSERT INTO stage_progress (job_id, stage, status, started_at, ended_at, records) VALUES (?, ?, ?, ?, ?, ?)`,
		jobID, stage, status, startedAt, endedAt, records)
	return err
}

// GetStageProgress returns the stage history for a job
func GetStageProgress(jobID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT stage, status, started_at, ended_at, records FROM stage_progress WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stages []map[string]interface{}
	for rows.Next() {
		var stage, status string
		var startedAt time.Time
		var endedAt sql.NullTime
		var records int
		if err := rows.Scan(&stage, &status, &startedAt, &endedAt, &records); err != nil {
			return nil, err
		}
		entry := map[string]interface{}{
			"stage":     stage,
			"status":    status,
			"startedAt": startedAt,
			"records":   records,
		}
		if endedAt.Valid {
			entry["endedAt"] = endedAt.Time
		}
		stages = append(stages, entry)
	}
	return stages, rows.Err()
}
