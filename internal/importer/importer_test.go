package importer

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sheetBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestReadSheetRowsAndHeader(t *testing.T) {
	data := sheetBytes(t, [][]interface{}{
		{"TIPO", "ruta", "Codigo", "PLACA", "SUPERVISOR", "CONTRATISTA"},
		{"Camión", "Ruta Norte 4", "RN-04", "C-123456", "M. Rojas", "DISTRIBUIDORA NORTE"},
	})

	rows, err := readSheetRows(data, ".xlsx")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	// Header match is case-insensitive and order-free.
	columns, err := parseHeader(rows[0])
	if err != nil {
		t.Fatalf("parse header: %v", err)
	}
	if columns["ruta"] != 1 || columns["contratista"] != 5 {
		t.Errorf("unexpected column mapping: %v", columns)
	}
}

func TestLoadRutasBlockedByDependentReportes(t *testing.T) {
	data := sheetBytes(t, [][]interface{}{
		{"RUTA", "CODIGO", "PLACA", "SUPERVISOR", "CONTRATISTA", "TIPO"},
		{"Ruta Norte 4", "RN-04", "C-123456", "M. Rojas", "DISTRIBUIDORA NORTE", "Camión"},
	})

	// A nil db proves no mutation is attempted: any table access would panic.
	_, err := loadRutas(nil, data, ".xlsx", func() (int64, error) { return 1, nil })
	if !errors.Is(err, ErrImportBlocked) {
		t.Fatalf("err = %v, want ErrImportBlocked", err)
	}
}

func TestLoadRutasCounterFailure(t *testing.T) {
	data := sheetBytes(t, [][]interface{}{
		{"RUTA", "CODIGO", "PLACA", "SUPERVISOR", "CONTRATISTA", "TIPO"},
	})

	countErr := errors.New("connection reset")
	_, err := loadRutas(nil, data, ".xlsx", func() (int64, error) { return 0, countErr })
	if !errors.Is(err, countErr) {
		t.Fatalf("err = %v, want the counter failure", err)
	}
}

func TestParseHeaderMissingColumn(t *testing.T) {
	_, err := parseHeader([]string{"RUTA", "CODIGO", "PLACA", "SUPERVISOR", "TIPO"})
	if err == nil {
		t.Fatal("expected missing CONTRATISTA to be an error")
	}
}

func TestCollectRutasSkipsMissingContratista(t *testing.T) {
	columns := map[string]int{
		"ruta": 0, "codigo": 1, "placa": 2, "supervisor": 3, "contratista": 4, "tipo": 5,
	}
	rows := [][]string{
		{"Ruta Norte 1", "RN-01", "C-111111", "M. Rojas", "DISTRIBUIDORA NORTE", "Camión"},
		{"Ruta Norte 2", "RN-02", "", "", "DISTRIBUIDORA NORTE", ""},
		{"Ruta Sur 1", "RS-01", "C-222222", "L. Mora", "", "Camión"},
		{"Ruta Sur 2", "RS-02", "C-333333", "L. Mora", "DISTRIBUIDORA SUR", "Panel"},
		{"Ruta Sin Dueño"},
	}

	rutas, skipped := collectRutas(columns, rows)
	if len(rutas) != 3 {
		t.Fatalf("got %d rutas, want 3", len(rutas))
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}

	// Blank cells other than contratista coerce to empty strings.
	if rutas[1].Placa != "" || rutas[1].Supervisor != "" || rutas[1].Tipo != "" {
		t.Errorf("blank cells should coerce to empty, got %+v", rutas[1])
	}
	if rutas[2].Contratista != "DISTRIBUIDORA SUR" {
		t.Errorf("unexpected third ruta %+v", rutas[2])
	}
}

func TestCellValueOutOfRange(t *testing.T) {
	row := []string{" a ", "b"}
	if got := cellValue(row, 0); got != "a" {
		t.Errorf("cellValue trims, got %q", got)
	}
	if got := cellValue(row, 5); got != "" {
		t.Errorf("out of range should be empty, got %q", got)
	}
	if got := cellValue(row, -1); got != "" {
		t.Errorf("negative index should be empty, got %q", got)
	}
}
