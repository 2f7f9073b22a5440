package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/dcode-github/hostel_listing_system/backend/models"
	"github.com/dcode-github/hostel_listing_system/backend/repository"
)

const exportSheet = "Hostels"

var exportHeader = []string{
	"Name",
	"Area",
	"City",
	"Room Type",
	"Beds Per Room",
	"Rent Per Bed",
	"Available Beds",
	"Facilities",
	"Contact Number",
	"Listed On",
}

var exportColumnWidths = []float64{28, 18, 14, 12, 14, 14, 15, 50, 20, 14}

// ExportListing writes the same filtered, sorted view GetListing shows
// as an .xlsx workbook. Invalid parameters fall back to their defaults.
func ExportListing(store repository.HostelStore, pageSize int, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := loadListing(r.Context(), store, pageSize, r.URL.Query())
		if err != nil {
			logger.Error("export fetch failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Message: listingFailedMessage, Detail: listingFailedDetail})
			return
		}

		data, err := GenerateHostelExport(l.hostels)
		if err != nil {
			logger.Error("GenerateHostelExport failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to generate export")
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=hostels.xlsx")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func GenerateHostelExport(hostels []models.Hostel) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(exportSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheet, name, name, exportColumnWidths[col]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, h := range hostels {
		facilities := make([]string, 0, len(h.Facilities))
		for _, fac := range h.Facilities {
			facilities = append(facilities, string(fac))
		}
		listedOn := ""
		if !h.CreatedAt.IsZero() {
			listedOn = h.CreatedAt.Format("2006-01-02")
		}

		row := []interface{}{
			h.Name,
			h.Address.Area,
			h.Address.City,
			string(h.RoomType),
			string(h.BedsPerRoom),
			h.RentPerBed,
			h.AvailableBeds,
			strings.Join(facilities, ", "),
			h.ContactNumber,
			listedOn,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
