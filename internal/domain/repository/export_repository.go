package repository

import (
	"github.com/diillson/aws-billing-dashboard-go/internal/domain/entity"
)

// ExportRepository defines the interface for writing report files.
type ExportRepository interface {
	ExportCostReportToCSV(report entity.CostReport, conv entity.Converter, filename, outputDir string) (string, error)
	ExportCostReportToJSON(report entity.CostReport, filename, outputDir string) (string, error)
	ExportCostReportToPDF(report entity.CostReport, conv entity.Converter, filename, outputDir string) (string, error)

	ExportTrendReportToCSV(points []entity.TrendPoint, conv entity.Converter, filename, outputDir string) (string, error)
	ExportTrendReportToJSON(points []entity.TrendPoint, filename, outputDir string) (string, error)
	ExportTrendReportToPDF(points []entity.TrendPoint, conv entity.Converter, filename, outputDir string) (string, error)
}
