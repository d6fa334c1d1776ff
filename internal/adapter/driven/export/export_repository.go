package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/aws-billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/aws-billing-dashboard-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implements the ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository creates a new ExportRepository implementation.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportCostReportToCSV writes the month report as CSV with USD and secondary
// currency columns. The conversion goes through the Converter so the rate and
// the N/A handling live in one place.
func (r *ExportRepositoryImpl) ExportCostReportToCSV(report entity.CostReport, conv entity.Converter, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"Service", "Cost (USD)", "Cost (INR)"})
	writer.Write([]string{
		fmt.Sprintf("Total (%s)", report.Month),
		report.TotalCost.String(),
		conv.Convert(report.TotalCost).String(),
	})
	for _, svc := range report.Services {
		writer.Write([]string{svc.Name, svc.Cost.String(), conv.Convert(svc.Cost).String()})
	}

	return filepath.Abs(outputFilename)
}

// ExportCostReportToJSON writes the month report with the same shape the HTTP
// API returns.
func (r *ExportRepositoryImpl) ExportCostReportToJSON(report entity.CostReport, filename, outputDir string) (string, error) {
	return writeJSONFile(report, filename, outputDir)
}

// ExportCostReportToPDF renders the month report as a single-page PDF table.
func (r *ExportRepositoryImpl) ExportCostReportToPDF(report entity.CostReport, conv entity.Converter, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := newReportPDF(fmt.Sprintf("AWS Cost Report - %s", report.Month.Label()))
	drawRow(pdf, true, "Service", "Cost (USD)", "Cost (INR)")
	drawRow(pdf, false, "Total", report.TotalCost.String(), conv.Convert(report.TotalCost).String())
	for _, svc := range report.Services {
		drawRow(pdf, false, svc.Name, svc.Cost.String(), conv.Convert(svc.Cost).String())
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

// ExportTrendReportToCSV writes the trend series, oldest month first.
func (r *ExportRepositoryImpl) ExportTrendReportToCSV(points []entity.TrendPoint, conv entity.Converter, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"Month", "Total Cost (USD)", "Total Cost (INR)"})
	for _, p := range points {
		writer.Write([]string{p.FormattedMonth, p.TotalCost.String(), conv.Convert(p.TotalCost).String()})
	}

	return filepath.Abs(outputFilename)
}

// ExportTrendReportToJSON writes the trend series with the API response shape.
func (r *ExportRepositoryImpl) ExportTrendReportToJSON(points []entity.TrendPoint, filename, outputDir string) (string, error) {
	return writeJSONFile(points, filename, outputDir)
}

// ExportTrendReportToPDF renders the trend series as a PDF table.
func (r *ExportRepositoryImpl) ExportTrendReportToPDF(points []entity.TrendPoint, conv entity.Converter, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := newReportPDF("AWS Cost Trend Report")
	drawRow(pdf, true, "Month", "Total Cost (USD)", "Total Cost (INR)")
	for _, p := range points {
		drawRow(pdf, false, p.FormattedMonth, p.TotalCost.String(), conv.Convert(p.TotalCost).String())
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

func writeJSONFile(data interface{}, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func newReportPDF(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFillColor(40, 40, 40)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, "  "+title, "", 1, "L", true, 0, "")
	pdf.Ln(6)

	return pdf
}

func drawRow(pdf *gofpdf.Fpdf, header bool, cells ...string) {
	if header {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(220, 220, 220)
	} else {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(245, 245, 245)
	}
	pdf.SetTextColor(50, 50, 50)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	widths := []float64{100, 45, 45}
	for i, cell := range cells {
		w := widths[len(widths)-1]
		if i < len(widths) {
			w = widths[i]
		}
		pdf.CellFormat(w, 7, tr(cell), "1", 0, "L", header, 0, "")
	}
	pdf.Ln(-1)
}

// generateFilename builds <dir>/<name>.<ext>, defaulting the base name to a
// timestamped report name when none is given.
func generateFilename(filename, outputDir, ext string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("aws-billing-report-%s", time.Now().Format("20060102-150405"))
	}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return "", fmt.Errorf("error creating output directory: %w", err)
		}
	}
	return filepath.Join(outputDir, fmt.Sprintf("%s.%s", filename, ext)), nil
}
