package businesssvc

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/business/models"
)

// ExportSheet is the worksheet name of a business export.
const ExportSheet = "Businesses"

// ExportHeader lists the export columns in order.
var ExportHeader = []string{
	"Business ID",
	"Business Name",
	"Contact Person",
	"Mobile Number",
	"Email",
	"City",
	"Category",
	"Source",
	"Status",
	"Visit Result",
	"Follow Up Date",
	"Appointment Date",
	"Assigned To",
	"Lead By",
	"Created By",
	"Remarks",
	"Created At",
}

var exportWidths = []float64{16, 30, 22, 16, 26, 16, 18, 16, 20, 18, 16, 18, 20, 20, 20, 40, 20}

// Export writes every business matching q within scope (up to MaxExportRows) to an xlsx
// workbook.
func (s *BusinessService) Export(ctx context.Context, q ListQuery, scope Scope) ([]byte, error) {
	filter, err := s.Compose(ctx, q, scope)
	if err != nil {
		return nil, err
	}
	views := []models.BusinessView{}
	if err := s.Aggregate(ctx, ViewPipeline(s.cols, filter, q.Sort(), 0, MaxExportRows), &views); err != nil {
		return nil, err
	}
	return WriteWorkbook(views, s.loc)
}

func refName(r *models.Ref) string {
	if r == nil {
		return ""
	}
	if r.Name != "" {
		return r.Name
	}
	return r.Code
}

func formatTime(t *time.Time, layout string, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(loc).Format(layout)
}

// exportRow renders one business in ExportHeader order.
func exportRow(b models.BusinessView, loc *time.Location) []interface{} {
	reason := ""
	if b.VisitResult != nil {
		reason = b.VisitResult.Reason
	}
	created := b.CreatedAt
	return []interface{}{
		b.BusinessID,
		b.BusinessName,
		b.ContactPersonName,
		b.MobileNumber,
		b.Email,
		refName(b.City),
		refName(b.Category),
		refName(b.Source),
		b.Status,
		reason,
		formatTime(b.FollowUpDate, "2006-01-02", loc),
		formatTime(b.AppointmentDate, "2006-01-02", loc),
		refName(b.AssignedTo),
		refName(b.LeadBy),
		refName(b.CreatedBy),
		b.Remarks,
		formatTime(&created, "2006-01-02 15:04", loc),
	}
}

// WriteWorkbook renders views into an xlsx file with a styled header row.
func WriteWorkbook(views []models.BusinessView, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ExportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(ExportHeader))
	for i, h := range ExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(ExportHeader), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(ExportSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, w := range exportWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(ExportSheet, col, col, w); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, b := range views {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := exportRow(b, loc)
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
