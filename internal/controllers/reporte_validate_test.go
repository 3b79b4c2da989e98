package controllers

import (
	"strings"
	"testing"
)

func TestHoraPattern(t *testing.T) {
	valid := []string{"00:00", "08:30", "13:05", "19:59", "23:59"}
	for _, hora := range valid {
		if !horaPattern.MatchString(hora) {
			t.Errorf("expected %q to be accepted", hora)
		}
	}

	invalid := []string{"25:99", "24:00", "23:60", "9:30", "12:5", "12:345", "ab:cd", "12-30", "", "12:30 "}
	for _, hora := range invalid {
		if horaPattern.MatchString(hora) {
			t.Errorf("expected %q to be rejected", hora)
		}
	}
}

func TestMissingFieldOrder(t *testing.T) {
	in := submitInput{}
	if got := in.missingField(); got != "contratista" {
		t.Errorf("missing field = %q, want contratista", got)
	}

	in.Contratista = "DISTRIBUIDORA NORTE"
	if got := in.missingField(); got != "ruta_id" {
		t.Errorf("missing field = %q, want ruta_id", got)
	}

	in.RutaID = 7
	if got := in.missingField(); got != "clientes_pendientes" {
		t.Errorf("missing field = %q, want clientes_pendientes", got)
	}

	in.ClientesPendientes = 3
	if got := in.missingField(); got != "cajas_camion" {
		t.Errorf("missing field = %q, want cajas_camion", got)
	}

	in.CajasCamion = 12
	if got := in.missingField(); got != "hora_aproximada_ingreso" {
		t.Errorf("missing field = %q, want hora_aproximada_ingreso", got)
	}

	in.HoraAproximadaIngreso = "14:30"
	if got := in.missingField(); got != "" {
		t.Errorf("missing field = %q, want none", got)
	}
}

func TestUbicacionWKBRoundTrip(t *testing.T) {
	lat, lon := 10.123456, -84.123456
	wkbBytes, err := ubicacionWKB(&lat, &lon)
	if err != nil {
		t.Fatalf("encode point: %v", err)
	}
	if len(wkbBytes) == 0 {
		t.Fatal("expected point bytes")
	}

	geojson := ubicacionGeoJSON(wkbBytes)
	if !strings.Contains(geojson, `"Point"`) {
		t.Errorf("geojson %q does not contain a Point", geojson)
	}
	if !strings.Contains(geojson, "-84.123456") || !strings.Contains(geojson, "10.123456") {
		t.Errorf("geojson %q does not carry the coordinates", geojson)
	}
}

func TestUbicacionWKBOptional(t *testing.T) {
	lat := 10.0
	for _, pair := range []struct{ lat, lon *float64 }{{nil, nil}, {&lat, nil}, {nil, &lat}} {
		bytes, err := ubicacionWKB(pair.lat, pair.lon)
		if err != nil {
			t.Fatalf("partial coordinates: %v", err)
		}
		if bytes != nil {
			t.Error("partial coordinates should encode no point")
		}
	}
	if geojson := ubicacionGeoJSON(nil); geojson != "" {
		t.Errorf("empty wkb should yield empty geojson, got %q", geojson)
	}
}
