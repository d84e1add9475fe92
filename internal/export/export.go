// Package export dumps the rows of a dry run to JSON or CSV files so the
// generated data can be inspected without a database.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Rana718/mcpseed/internal/database/memory"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type Table struct {
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}

type Data struct {
	Timestamp string                      `json:"timestamp"`
	RunID     string                      `json:"run_id"`
	Databases map[string]map[string]Table `json:"databases"`
}

// Snapshot copies every committed row of server. Columns follow the order
// the tables were declared with.
func Snapshot(server *memory.Server, runID string, at time.Time) Data {
	data := Data{
		Timestamp: at.Format("2006-01-02 15:04:05"),
		RunID:     runID,
		Databases: make(map[string]map[string]Table),
	}
	for _, db := range server.Databases() {
		tables := make(map[string]Table)
		for _, name := range server.Tables(db) {
			def, ok := server.Schema(db, name)
			if !ok {
				continue
			}
			t := Table{}
			for _, col := range def.Columns {
				t.Columns = append(t.Columns, col.Name)
			}
			for _, row := range server.Rows(db, name) {
				t.Rows = append(t.Rows, row.Values)
			}
			tables[name] = t
		}
		data.Databases[db] = tables
	}
	return data
}

// Write stores data under exportPath and returns the file or directory it
// created.
func Write(data Data, exportPath, format string, at time.Time) (string, error) {
	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	stamp := at.Format("2006-01-02_15-04-05")

	switch format {
	case FormatCSV:
		return exportToCSV(data, filepath.Join(exportPath, fmt.Sprintf("export_%s_csv", stamp)))
	case FormatJSON, "":
		return exportToJSON(data, filepath.Join(exportPath, fmt.Sprintf("export_%s.json", stamp)))
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}

func exportToJSON(data Data, filePath string) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

// exportToCSV writes one <database>/<table>.csv per table.
func exportToCSV(data Data, dirPath string) (string, error) {
	for db, tables := range data.Databases {
		dbDir := filepath.Join(dirPath, db)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create CSV directory: %w", err)
		}
		for name, t := range tables {
			if err := writeCSV(filepath.Join(dbDir, name+".csv"), t); err != nil {
				return "", fmt.Errorf("failed to write CSV file for %s.%s: %w", db, name, err)
			}
		}
	}
	return dirPath, nil
}

func writeCSV(path string, t Table) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		values := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			values[i] = formatValue(row[col])
		}
		if err := writer.Write(values); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}

func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", v)
	}
}
