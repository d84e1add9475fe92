package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rana718/mcpseed/internal/database/memory"
	"github.com/Rana718/mcpseed/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportTime = time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

func seededServer(t *testing.T) *memory.Server {
	t.Helper()
	ctx := context.Background()
	server := memory.NewServer()
	a := memory.New(server)
	require.NoError(t, a.Connect(ctx, "memory://"))
	require.NoError(t, a.CreateDatabase(ctx, "mcp1"))
	require.NoError(t, a.Connect(ctx, "memory://mcp1"))

	tx, err := a.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateTable(ctx, types.SchemaTable{Name: "customers", Columns: []types.SchemaColumn{
		types.Serial("customer_id"), types.Text("name"), types.Date("join_date"),
	}}))
	_, err = tx.Insert(ctx, "customers", "customer_id",
		[]string{"name", "join_date"},
		[]interface{}{"김민준", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	return server
}

func TestSnapshot(t *testing.T) {
	data := Snapshot(seededServer(t), "run-1", exportTime)
	assert.Equal(t, "2025-06-15 09:30:00", data.Timestamp)

	customers := data.Databases["mcp1"]["customers"]
	assert.Equal(t, []string{"customer_id", "name", "join_date"}, customers.Columns)
	require.Len(t, customers.Rows, 1)
	assert.Equal(t, "김민준", customers.Rows[0]["name"])
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path, err := Write(Snapshot(seededServer(t), "run-1", exportTime), dir, FormatJSON, exportTime)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "export_2025-06-15_09-30-00.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var back Data
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "run-1", back.RunID)
	assert.Len(t, back.Databases["mcp1"]["customers"].Rows, 1)
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := Write(Snapshot(seededServer(t), "run-1", exportTime), dir, FormatCSV, exportTime)
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(path, "mcp1", "customers.csv"))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"customer_id", "name", "join_date"},
		{"1", "김민준", "2024-03-01"},
	}, records)
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	_, err := Write(Data{}, t.TempDir(), "xml", exportTime)
	assert.Error(t, err)
}
