package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diillson/aws-billing-dashboard-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCostReport() entity.CostReport {
	return entity.CostReport{
		Month:     entity.NewCalendarMonth(2025, time.March),
		TotalCost: entity.ParseAmount("123.45"),
		Services: []entity.ServiceCostEntry{
			{Name: "Amazon EC2", Cost: entity.ParseAmount("100.00")},
			{Name: "AWS Lambda", Cost: entity.Unavailable()},
		},
	}
}

func sampleTrendPoints() []entity.TrendPoint {
	feb := entity.NewCalendarMonth(2025, time.February)
	mar := entity.NewCalendarMonth(2025, time.March)
	return []entity.TrendPoint{
		{Month: feb, FormattedMonth: feb.Label(), TotalCost: entity.ParseAmount("80.00")},
		{Month: mar, FormattedMonth: mar.Label(), TotalCost: entity.ParseAmount("123.45")},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportCostReportToCSV(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	path, err := repo.ExportCostReportToCSV(sampleCostReport(), entity.NewConverter(83), "march", dir)
	require.NoError(t, err)
	assert.Equal(t, "march.csv", filepath.Base(path))

	records := readCSV(t, path)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Service", "Cost (USD)", "Cost (INR)"}, records[0])
	assert.Equal(t, []string{"Total (2025-03)", "123.45", "10246.35"}, records[1])
	assert.Equal(t, []string{"Amazon EC2", "100.00", "8300.00"}, records[2])
	assert.Equal(t, []string{"AWS Lambda", "N/A", "N/A"}, records[3])
}

func TestExportTrendReportToCSV(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	path, err := repo.ExportTrendReportToCSV(sampleTrendPoints(), entity.NewConverter(83), "trend", dir)
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Month", "Total Cost (USD)", "Total Cost (INR)"}, records[0])
	assert.Equal(t, []string{"Feb 2025", "80.00", "6640.00"}, records[1])
	assert.Equal(t, []string{"Mar 2025", "123.45", "10246.35"}, records[2])
}

func TestExportCostReportToJSON(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	path, err := repo.ExportCostReportToJSON(sampleCostReport(), "march", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var body struct {
		Month     string `json:"month"`
		TotalCost string `json:"totalCost"`
		Services  []struct {
			Name string  `json:"name"`
			Cost *string `json:"cost"`
		} `json:"services"`
	}
	require.NoError(t, json.Unmarshal(data, &body))

	assert.Equal(t, "2025-03", body.Month)
	assert.Equal(t, "123.45", body.TotalCost)
	require.Len(t, body.Services, 2)
	assert.Nil(t, body.Services[1].Cost)
}

func TestExportCostReportToPDF(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	path, err := repo.ExportCostReportToPDF(sampleCostReport(), entity.NewConverter(83), "march", dir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.True(t, strings.HasSuffix(path, "march.pdf"))
}

func TestGenerateFilename_DefaultsAndDirCreation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	path, err := generateFilename("", dir, "csv")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "aws-billing-report-"))
	assert.True(t, strings.HasSuffix(path, ".csv"))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
