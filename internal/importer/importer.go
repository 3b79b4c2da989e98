// Package importer bulk-replaces the rutas table from the contractor
// spreadsheet (DB_Rutas.xlsx or a legacy .xls).
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"rutas_tracker/internal/models"
)

// ErrImportBlocked means dependent reportes exist and no rows were changed.
var ErrImportBlocked = errors.New("rutas cannot be replaced while reportes reference them")

var requiredColumns = []string{"ruta", "codigo", "placa", "supervisor", "contratista", "tipo"}

// Result summarizes one import run. Skipped counts rows dropped for a
// missing contratista or a row-level failure; those are reported, not fatal.
type Result struct {
	Imported int
	Skipped  int
}

// LoadRutas replaces the rutas table with the contents of the spreadsheet at
// path. Precondition: zero reportes reference any ruta, otherwise it fails
// with ErrImportBlocked and performs no mutation.
func LoadRutas(db *gorm.DB, path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return loadRutas(db, data, strings.ToLower(filepath.Ext(path)), func() (int64, error) {
		var reportes int64
		err := db.Model(&models.Reporte{}).Count(&reportes).Error
		return reportes, err
	})
}

// loadRutas runs the import against an injected dependent-reportes counter.
func loadRutas(db *gorm.DB, data []byte, ext string, countReportes func() (int64, error)) (Result, error) {
	rows, err := readSheetRows(data, ext)
	if err != nil {
		return Result{}, err
	}
	columns, err := parseHeader(rows[0])
	if err != nil {
		return Result{}, err
	}

	reportes, err := countReportes()
	if err != nil {
		return Result{}, err
	}
	if reportes > 0 {
		logrus.WithField("reportes", reportes).Warn("import blocked: dependent reportes exist")
		return Result{}, ErrImportBlocked
	}

	rutas, skipped := collectRutas(columns, rows[1:])

	var result Result
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Ruta{}).Error; err != nil {
			return err
		}
		for i := range rutas {
			if err := tx.Create(&rutas[i]).Error; err != nil {
				logrus.WithError(err).WithField("ruta", rutas[i].Ruta).Warn("skipping ruta row")
				skipped++
				continue
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	result.Skipped = skipped

	logrus.WithFields(logrus.Fields{
		"imported": result.Imported,
		"skipped":  result.Skipped,
	}).Info("rutas replaced from spreadsheet")
	return result, nil
}

// readSheetRows returns the cell grid of the first worksheet.
func readSheetRows(data []byte, ext string) ([][]string, error) {
	switch ext {
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, err
		}
		if workbook.NumSheets() == 0 {
			return nil, fmt.Errorf("no worksheet found")
		}
		rows := workbook.ReadAllCells(100000)
		if len(rows) == 0 {
			return nil, fmt.Errorf("worksheet is empty")
		}
		return rows, nil
	default:
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("no worksheet found")
		}
		rows, err := file.GetRows(sheetName)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("worksheet is empty")
		}
		return rows, nil
	}
}

// parseHeader maps the required column names to their indices. Header match
// is case-insensitive and order-free.
func parseHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(requiredColumns))
	for idx, cell := range header {
		columns[normalizeHeader(cell)] = idx
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", strings.ToUpper(name))
		}
	}
	return columns, nil
}

// collectRutas converts data rows to Ruta records. Rows without a
// contratista are skipped; all other blank cells coerce to empty strings.
func collectRutas(columns map[string]int, rows [][]string) ([]models.Ruta, int) {
	var rutas []models.Ruta
	skipped := 0
	for _, row := range rows {
		ruta := models.Ruta{
			Ruta:        cellValue(row, columns["ruta"]),
			Codigo:      cellValue(row, columns["codigo"]),
			Placa:       cellValue(row, columns["placa"]),
			Supervisor:  cellValue(row, columns["supervisor"]),
			Contratista: cellValue(row, columns["contratista"]),
			Tipo:        cellValue(row, columns["tipo"]),
		}
		if ruta.Contratista == "" {
			logrus.WithField("ruta", ruta.Ruta).Warn("skipping ruta without contratista")
			skipped++
			continue
		}
		rutas = append(rutas, ruta)
	}
	return rutas, skipped
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
