package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fuelcosmos-api/models"
	"fuelcosmos-api/repositories"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ExportController struct {
	repo *repositories.FillUpRepository
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{repo: repositories.NewFillUpRepository(db)}
}

var exportHeader = []string{
	"id", "vehicleId", "tankProfileId", "entryDate", "odometerKm",
	"fuelVolumeL", "totalCost", "currency", "fuelType", "fillLevel",
	"sourceType", "pricePerLiter", "distanceSinceLastKm",
	"economyLPer100Km", "economyMpg", "costPerKm",
}

// ExportFillUps streams the user's fill-up history as csv, json or xlsx.
// Entries come out ordered by entry date ascending.
func (ec *ExportController) ExportFillUps(c *gin.Context) {
	userID := c.GetString("user_id")
	format := c.DefaultQuery("format", "csv")
	vehicleID := c.Query("vehicle_id")

	var entries []models.FillUpEntry
	var err error
	if vehicleID != "" {
		entries, err = ec.repo.ListByVehicle(userID, vehicleID, nil)
	} else {
		entries, err = ec.repo.ListByUser(userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fill-up entries"})
		return
	}

	filename := fmt.Sprintf("fillups-%s", time.Now().Format("2006-01-02"))

	switch format {
	case "json":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", filename))
		c.JSON(http.StatusOK, entries)
	case "csv":
		ec.writeCSV(c, entries, filename)
	case "xlsx":
		ec.writeXLSX(c, entries, filename)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format must be csv, json or xlsx"})
	}
}

func (ec *ExportController) writeCSV(c *gin.Context, entries []models.FillUpEntry, filename string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write(exportHeader); err != nil {
		return
	}
	for _, entry := range entries {
		record := make([]string, 0, len(exportHeader))
		for _, cell := range exportRow(entry) {
			record = append(record, fmt.Sprintf("%v", cell))
		}
		if err := writer.Write(record); err != nil {
			return
		}
	}
}

func (ec *ExportController) writeXLSX(c *gin.Context, entries []models.FillUpEntry, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "FillUps"
	f.SetSheetName("Sheet1", sheet)

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export file"})
		return
	}

	for i, entry := range entries {
		cell := "A" + strconv.Itoa(i+2)
		row := exportRow(entry)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export file"})
			return
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export file"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func exportRow(entry models.FillUpEntry) []interface{} {
	return []interface{}{
		entry.ID,
		entry.VehicleID,
		strOrEmpty(entry.TankProfileID),
		entry.EntryDate.Format(time.RFC3339),
		entry.OdometerKm,
		entry.FuelVolumeL,
		entry.TotalCost,
		entry.Currency,
		string(entry.FuelType),
		string(entry.FillLevel),
		string(entry.SourceType),
		entry.PricePerLiter,
		floatOrEmpty(entry.DistanceSinceLastKm),
		floatOrEmpty(entry.EconomyLPer100Km),
		floatOrEmpty(entry.EconomyMpg),
		floatOrEmpty(entry.CostPerKm),
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(f *float64) interface{} {
	if f == nil {
		return ""
	}
	return *f
}
