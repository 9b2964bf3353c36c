package pipeline

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"go-survival-pipeline/internal/model"
	"go-survival-pipeline/internal/survival"
	"go-survival-pipeline/pkg/utils"
)

// ------------------- Ingestion -------------------

// IngestSource starts ingestion for a single source (CSV/JSON/API)
func IngestSource(ctx context.Context, source model.Source, out chan<- survival.Record, errs chan<- error) {
	if source.Type == "" {
		source.Type = utils.FileType(source.URL)
	}

	fmt.Printf("➡️ Starting ingestion for source: %s (%s)\n", source.URL, source.Type)
	defer fmt.Printf("✅ Finished ingestion for source: %s (%s)\n", source.URL, source.Type)

	switch strings.ToLower(source.Type) {
	case "csv":
		ingestCSV(ctx, source.URL, out, errs)
	case "json", "api":
		ingestJSON(ctx, source.URL, out, errs)
	default:
		errs <- fmt.Errorf("unknown source type: %s", source.Type)
	}
}

// StartIngestion ingests all sources in parallel. workers > 0 caps how many
// sources are read at once; otherwise every source gets its own goroutine.
func StartIngestion(ctx context.Context, sources []model.Source, workers int, out chan<- survival.Record, errs chan<- error) {
	var sem chan struct{}
	if workers > 0 {
		sem = make(chan struct{}, workers)
	}

	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(s model.Source) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			IngestSource(ctx, s, out, errs)
		}(src)
	}

	wg.Wait() // wait for all ingestion goroutines
}

// openSource opens a local file or fetches a URL.
func openSource(pathOrURL string) (io.ReadCloser, error) {
	if strings.HasPrefix(pathOrURL, "http") {
		resp, err := http.Get(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("failed to GET %s: %w", pathOrURL, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("GET %s returned status %d", pathOrURL, resp.StatusCode)
		}
		return resp.Body, nil
	}

	file, err := os.Open(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", pathOrURL, err)
	}
	return file, nil
}

// ------------------- CSV Ingestion -------------------

func ingestCSV(ctx context.Context, pathOrURL string, out chan<- survival.Record, errs chan<- error) {
	reader, err := openSource(pathOrURL)
	if err != nil {
		errs <- err
		return
	}
	defer reader.Close()

	csvReader := csv.NewReader(reader)
	csvReader.LazyQuotes = true
	headers, err := csvReader.Read()
	if err != nil {
		errs <- fmt.Errorf("failed to read CSV header: %w", err)
		return
	}
	for i, h := range headers {
		headers[i] = strings.ReplaceAll(strings.TrimSpace(h), `"`, "")
	}

	recordCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
			record, err := csvReader.Read()
			if err == io.EOF {
				fmt.Printf("📄 CSV ingestion done: %d records read from %s\n", recordCount, pathOrURL)
				return
			} else if err != nil {
				errs <- fmt.Errorf("CSV read error: %w", err)
				continue
			}

			rec := make(survival.Record, len(headers))
			for i, h := range headers {
				rec[h] = utils.ParseValue(record[i])
			}

			select {
			case <-ctx.Done():
				return
			case out <- rec:
				recordCount++
				if recordCount%5000 == 0 {
					fmt.Printf("📄 CSV: Processed %d records from %s\n", recordCount, pathOrURL)
				}
			}
		}
	}
}

// ------------------- JSON / API Ingestion -------------------

func ingestJSON(ctx context.Context, pathOrURL string, out chan<- survival.Record, errs chan<- error) {
	reader, err := openSource(pathOrURL)
	if err != nil {
		errs <- err
		return
	}
	defer reader.Close()

	bodyBytes, err := io.ReadAll(reader)
	if err != nil {
		errs <- fmt.Errorf("failed to read JSON body: %w", err)
		return
	}

	var raw interface{}
	if err := json.Unmarshal(bodyBytes, &raw); err != nil {
		errs <- fmt.Errorf("failed to decode JSON: %w", err)
		return
	}

	recordCount := 0
	switch data := raw.(type) {
	case []interface{}:
		for _, item := range data {
			m, ok := item.(map[string]interface{})
			if !ok {
				errs <- fmt.Errorf("unexpected JSON element of type %T", item)
				continue
			}
			select {
			case <-ctx.Done():
				return
			case out <- normalizeJSONRecord(m):
				recordCount++
			}
		}
	case map[string]interface{}:
		select {
		case <-ctx.Done():
			return
		case out <- normalizeJSONRecord(data):
			recordCount++
		}
	default:
		errs <- fmt.Errorf("unexpected JSON structure")
		return
	}

	fmt.Printf("🌐 JSON ingestion done: %d records read from %s\n", recordCount, pathOrURL)
}

// normalizeJSONRecord collapses encoding/json's float64 numbers to int where
// they are whole, so time indices and ages arrive as integers like CSV cells.
func normalizeJSONRecord(m map[string]interface{}) survival.Record {
	rec := make(survival.Record, len(m))
	for k, v := range m {
		if f, ok := v.(float64); ok && f == float64(int(f)) {
			rec[k] = int(f)
			continue
		}
		rec[k] = v
	}
	return rec
}
