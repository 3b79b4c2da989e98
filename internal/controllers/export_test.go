package controllers

import (
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbookEmptyDay(t *testing.T) {
	buf, filename, err := buildWorkbook("2026-08-28", nil)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	if filename != "reportes_rutas_20260828.xlsx" {
		t.Errorf("filename = %q", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheet := "Reportes Rutas 2026-08-28"
	if f.GetSheetName(0) != sheet {
		t.Fatalf("sheet name = %q, want %q", f.GetSheetName(0), sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want only the header", len(rows))
	}
	if !reflect.DeepEqual(rows[0], exportHeaders) {
		t.Errorf("header row = %v", rows[0])
	}
}

func TestBuildWorkbookRowContent(t *testing.T) {
	when := time.Date(2026, 8, 28, 14, 30, 5, 0, time.UTC)
	row := reporteRow{
		ID:                    9,
		Contratista:           "DISTRIBUIDORA NORTE",
		RutaCodigo:            "RN-04",
		ClientesPendientes:    5,
		CajasCamion:           10,
		HoraAproximadaIngreso: "16:00",
		UbicacionExacta:       "Bodega central",
		HoraExactaEnvio:       when,
		FechaReporte:          when,
		HoraReporte:           when,
		Estado:                "activo",
		ReportadoPor:          "supervisor",
		Supervisor:            "M. Rojas",
		Placa:                 "C-123456",
	}

	buf, _, err := buildWorkbook("2026-08-28", []reporteRow{row})
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Reportes Rutas 2026-08-28")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}

	got := rows[1]
	want := []string{
		"9", "2026-08-28", "2026-08-28 14:30:05", "DISTRIBUIDORA NORTE", "RN-04",
		"M. Rojas", "C-123456", "5", "10", "16:00",
		"2026-08-28 14:30:05", "Bodega central", "", "activo", "supervisor",
	}
	if len(got) < 12 {
		t.Fatalf("data row too short: %v", got)
	}
	for i := range got {
		if i < len(want) && got[i] != want[i] {
			t.Errorf("column %d (%s) = %q, want %q", i+1, exportHeaders[i], got[i], want[i])
		}
	}
}
