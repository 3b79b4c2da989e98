package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rutas_tracker/internal/middleware"
	"rutas_tracker/internal/models"
)

func statusContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/update_reporte_status", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set("identity", middleware.Identity{UserID: 7, Username: "supervisor", Role: models.RoleAdmin})
	return c, w
}

func TestUpdateReporteStatusNotFound(t *testing.T) {
	origFind, origUpdate, origRecord := findReporteEstado, updateReporteEstado, recordStatusChange
	defer func() {
		findReporteEstado, updateReporteEstado, recordStatusChange = origFind, origUpdate, origRecord
	}()

	findReporteEstado = func(reporteID uint) (estadoSnapshot, error) {
		return estadoSnapshot{}, gorm.ErrRecordNotFound
	}
	updated := false
	updateReporteEstado = func(reporteID uint, estado string) error {
		updated = true
		return nil
	}
	recorded := false
	recordStatusChange = func(c *gin.Context, userID *uint, action, targetType string, targetID uint, details string) {
		recorded = true
	}

	c, w := statusContext(t, `{"reporte_id": 999, "status": "completado"}`)
	UpdateReporteStatus(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Success || resp.Error != "Reporte no encontrado" {
		t.Errorf("response = %+v, want success=false error=Reporte no encontrado", resp)
	}
	if updated {
		t.Error("estado updated for a nonexistent reporte")
	}
	if recorded {
		t.Error("activity recorded for a nonexistent reporte")
	}
}

func TestUpdateReporteStatusRecordsChange(t *testing.T) {
	origFind, origUpdate, origRecord := findReporteEstado, updateReporteEstado, recordStatusChange
	defer func() {
		findReporteEstado, updateReporteEstado, recordStatusChange = origFind, origUpdate, origRecord
	}()

	findReporteEstado = func(reporteID uint) (estadoSnapshot, error) {
		return estadoSnapshot{Estado: "activo", RutaCodigo: "RN-04", Contratista: "DISTRIBUIDORA NORTE"}, nil
	}
	var gotID uint
	var gotEstado string
	updateReporteEstado = func(reporteID uint, estado string) error {
		gotID, gotEstado = reporteID, estado
		return nil
	}
	var gotAction, gotDetails, gotTarget string
	var gotTargetID uint
	var gotUserID *uint
	recordStatusChange = func(c *gin.Context, userID *uint, action, targetType string, targetID uint, details string) {
		gotUserID, gotAction, gotTarget, gotTargetID, gotDetails = userID, action, targetType, targetID, details
	}

	c, w := statusContext(t, `{"reporte_id": 42, "status": "completado"}`)
	UpdateReporteStatus(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if gotID != 42 || gotEstado != "completado" {
		t.Errorf("update called with (%d, %q), want (42, completado)", gotID, gotEstado)
	}
	if gotAction != models.ActionUpdateReporteStatus || gotTarget != "reporte" || gotTargetID != 42 {
		t.Errorf("activity = (%s, %s, %d), want (%s, reporte, 42)", gotAction, gotTarget, gotTargetID, models.ActionUpdateReporteStatus)
	}
	if gotUserID == nil || *gotUserID != 7 {
		t.Errorf("activity userID = %v, want 7", gotUserID)
	}
	want := "Ruta RN-04 (DISTRIBUIDORA NORTE): activo -> completado"
	if gotDetails != want {
		t.Errorf("details = %q, want %q", gotDetails, want)
	}
}

func TestUpdateReporteStatusRejectsIncompleteInput(t *testing.T) {
	origFind := findReporteEstado
	defer func() { findReporteEstado = origFind }()
	findReporteEstado = func(reporteID uint) (estadoSnapshot, error) {
		t.Fatal("store queried for invalid input")
		return estadoSnapshot{}, nil
	}

	for _, body := range []string{`{}`, `{"reporte_id": 5}`, `{"status": "activo"}`} {
		c, w := statusContext(t, body)
		UpdateReporteStatus(c)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want %d", body, w.Code, http.StatusBadRequest)
		}
	}
}
