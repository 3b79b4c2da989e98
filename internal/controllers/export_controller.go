package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"rutas_tracker/internal/activity"
	"rutas_tracker/internal/middleware"
	"rutas_tracker/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{
	"ID", "Fecha", "Hora Reporte", "Contratista", "Ruta", "Supervisor",
	"Placa", "Clientes Pendientes", "Cajas en Camión", "Hora Aprox. Ingreso",
	"Hora Exacta Envío", "Ubicación Exacta", "Comentarios", "Estado", "Reportado Por",
}

// ExportReportes downloads the day's reportes as a styled spreadsheet.
func ExportReportes(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	fecha := c.DefaultQuery("fecha", time.Now().Format("2006-01-02"))

	var rows []reporteRow
	err := reporteQuery(fecha, "").
		Select(reporteSelect).
		Order("reportes_rutas.contratista, reportes_rutas.hora_aproximada_ingreso").
		Scan(&rows).Error
	if err != nil {
		exportFailed(c, err)
		return
	}

	buf, filename, err := buildWorkbook(fecha, rows)
	if err != nil {
		exportFailed(c, err)
		return
	}

	activity.Record(c, &ident.UserID, models.ActionExportReportes,
		fmt.Sprintf("Exportó %d reportes del %s", len(rows), fecha))

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func exportFailed(c *gin.Context, err error) {
	logrus.WithError(err).Error("export_reportes failed")
	middleware.SetFlash(c, "error", "Error exportando: "+err.Error())
	c.Redirect(http.StatusFound, "/admin")
}

// buildWorkbook renders the fixed 15-column export sheet in memory and
// returns the content together with the suggested filename.
func buildWorkbook(fecha string, rows []reporteRow) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Reportes Rutas " + fecha
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", err
	}

	widths := make([]int, len(exportHeaders))
	setCell := func(rowIdx, colIdx int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
		if n := len(fmt.Sprint(value)); n > widths[colIdx] {
			widths[colIdx] = n
		}
		return nil
	}

	for col, header := range exportHeaders {
		if err := setCell(0, col, header); err != nil {
			return nil, "", err
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2F5496"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, "", err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err != nil {
		return nil, "", err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, "", err
	}

	for i, row := range rows {
		values := []interface{}{
			row.ID,
			row.FechaReporte.Format("2006-01-02"),
			row.HoraReporte.Format("2006-01-02 15:04:05"),
			row.Contratista,
			row.RutaCodigo,
			row.Supervisor,
			row.Placa,
			row.ClientesPendientes,
			row.CajasCamion,
			row.HoraAproximadaIngreso,
			row.HoraExactaEnvio.Format("2006-01-02 15:04:05"),
			row.UbicacionExacta,
			row.Comentarios,
			row.Estado,
			row.ReportadoPor,
		}
		for col, value := range values {
			if err := setCell(i+1, col, value); err != nil {
				return nil, "", err
			}
		}
	}

	for col := range exportHeaders {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, "", err
		}
		width := min(widths[col]+2, 50)
		if err := f.SetColWidth(sheet, name, name, float64(width)); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := "reportes_rutas_" + strings.ReplaceAll(fecha, "-", "") + ".xlsx"
	return buf, filename, nil
}
