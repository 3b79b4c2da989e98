package controllers

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"

	"rutas_tracker/internal/activity"
	"rutas_tracker/internal/config"
	"rutas_tracker/internal/middleware"
	"rutas_tracker/internal/models"
)

// reporteRow is one listing row: a reporte joined with its route metadata.
type reporteRow struct {
	ID                    uint      `json:"id"`
	Contratista           string    `json:"contratista"`
	RutaID                uint      `json:"ruta_id"`
	RutaCodigo            string    `json:"ruta_codigo"`
	ClientesPendientes    int       `json:"clientes_pendientes"`
	CajasCamion           int       `json:"cajas_camion"`
	HoraAproximadaIngreso string    `json:"hora_aproximada_ingreso"`
	UbicacionExacta       string    `json:"ubicacion_exacta"`
	Latitud               *float64  `json:"latitud"`
	Longitud              *float64  `json:"longitud"`
	Ubicacion             []byte    `json:"-"`
	HoraExactaEnvio       time.Time `json:"hora_exacta_envio"`
	Comentarios           string    `json:"comentarios"`
	FechaReporte          time.Time `json:"fecha_reporte"`
	HoraReporte           time.Time `json:"hora_reporte"`
	Estado                string    `json:"estado"`
	ReportadoPor          string    `json:"reportado_por"`
	Supervisor            string    `json:"supervisor"`
	Placa                 string    `json:"placa"`
	Tipo                  string    `json:"tipo"`
}

const reporteSelect = "reportes_rutas.*, rutas.supervisor AS supervisor, rutas.placa AS placa, rutas.tipo AS tipo"

// reporteQuery builds the filtered reporte/ruta join. An empty fecha means
// no date restriction; filtering compares calendar dates only.
func reporteQuery(fecha, contratista string) *gorm.DB {
	q := config.DB.Model(&models.Reporte{}).
		Joins("LEFT JOIN rutas ON rutas.id = reportes_rutas.ruta_id")
	if fecha != "" {
		q = q.Where("DATE(reportes_rutas.fecha_reporte) = DATE(?)", fecha)
	}
	if contratista != "" {
		q = q.Where("reportes_rutas.contratista = ?", contratista)
	}
	return q
}

type submitInput struct {
	Contratista           string   `json:"contratista"`
	RutaID                uint     `json:"ruta_id"`
	ClientesPendientes    int      `json:"clientes_pendientes"`
	CajasCamion           int      `json:"cajas_camion"`
	HoraAproximadaIngreso string   `json:"hora_aproximada_ingreso"`
	UbicacionExacta       string   `json:"ubicacion_exacta"`
	Latitud               *float64 `json:"latitud"`
	Longitud              *float64 `json:"longitud"`
	Comentarios           string   `json:"comentarios"`
	ReportadoPor          string   `json:"reportado_por"`
}

// missingField returns the first required field that is absent or zero, in
// submission-form order. Zero counts as missing for the numeric fields.
func (in *submitInput) missingField() string {
	switch {
	case in.Contratista == "":
		return "contratista"
	case in.RutaID == 0:
		return "ruta_id"
	case in.ClientesPendientes == 0:
		return "clientes_pendientes"
	case in.CajasCamion == 0:
		return "cajas_camion"
	case in.HoraAproximadaIngreso == "":
		return "hora_aproximada_ingreso"
	}
	return ""
}

// horaPattern is the strict 24-hour HH:MM format reporters must use.
var horaPattern = regexp.MustCompile(`^(?:[01][0-9]|2[0-3]):[0-5][0-9]$`)

// ubicacionWKB encodes an optional lat/lon pair as a WGS84 point.
func ubicacionWKB(lat, lon *float64) ([]byte, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	point := geom.NewPointFlat(geom.XY, []float64{*lon, *lat})
	point.SetSRID(4326)
	return wkb.Marshal(point, binary.LittleEndian)
}

// ubicacionGeoJSON converts a stored WKB point back to a GeoJSON string.
func ubicacionGeoJSON(wkbBytes []byte) string {
	if len(wkbBytes) == 0 {
		return ""
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return ""
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return ""
	}
	return string(b)
}

// SubmitReporte validates and persists a field report against an existing
// ruta. The submission timestamp and report date are server-assigned; the
// route code is snapshotted at this instant.
func SubmitReporte(c *gin.Context) {
	var input submitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
		return
	}

	if field := input.missingField(); field != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Campo requerido: " + field})
		return
	}
	if !horaPattern.MatchString(input.HoraAproximadaIngreso) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Formato de hora inválido. Use HH:MM"})
		return
	}

	var ruta models.Ruta
	if err := config.DB.First(&ruta, input.RutaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Ruta no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	ubicacion, err := ubicacionWKB(input.Latitud, input.Longitud)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Coordenadas inválidas: " + err.Error()})
		return
	}

	reportadoPor := input.ReportadoPor
	if reportadoPor == "" {
		reportadoPor = models.ReportadoPorDefault
	}

	now := time.Now()
	reporte := models.Reporte{
		Contratista:           input.Contratista,
		RutaID:                ruta.ID,
		RutaCodigo:            ruta.Codigo,
		ClientesPendientes:    input.ClientesPendientes,
		CajasCamion:           input.CajasCamion,
		HoraAproximadaIngreso: input.HoraAproximadaIngreso,
		UbicacionExacta:       input.UbicacionExacta,
		Latitud:               input.Latitud,
		Longitud:              input.Longitud,
		Ubicacion:             ubicacion,
		HoraExactaEnvio:       now,
		Comentarios:           input.Comentarios,
		FechaReporte:          now,
		HoraReporte:           now,
		Estado:                models.EstadoActivo,
		ReportadoPor:          reportadoPor,
	}
	if err := config.DB.Create(&reporte).Error; err != nil {
		logrus.WithError(err).Error("submit_reporte: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	// Read the persisted date back so the caller can verify the round trip.
	var saved models.Reporte
	if err := config.DB.Select("id", "fecha_reporte", "hora_reporte").First(&saved, reporte.ID).Error; err != nil {
		logrus.WithError(err).Warn("submit_reporte: verification read failed")
		saved = reporte
	}

	logrus.WithFields(logrus.Fields{
		"reporte_id":  reporte.ID,
		"contratista": input.Contratista,
		"ruta":        ruta.Ruta,
	}).Info("reporte guardado")

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Reporte de ruta enviado exitosamente",
		"reporte_id":     reporte.ID,
		"fecha_guardada": saved.FechaReporte.Format("2006-01-02"),
	})
}

// Admin renders the paginated report listing.
func Admin(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	fecha := c.DefaultQuery("fecha", time.Now().Format("2006-01-02"))
	contratista := c.Query("contratista")
	page := queryInt(c.Query("page"), 1, 1, 1<<30)
	perPage := queryInt(c.Query("per_page"), 10, 1, 100)

	var total int64
	if err := reporteQuery(fecha, contratista).Count(&total).Error; err != nil {
		logrus.WithError(err).Error("admin: count failed")
		middleware.SetFlash(c, "error", "Error consultando reportes")
		c.Redirect(http.StatusFound, "/")
		return
	}

	var rows []reporteRow
	err := reporteQuery(fecha, contratista).
		Select(reporteSelect).
		Order("reportes_rutas.hora_reporte DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Scan(&rows).Error
	if err != nil {
		logrus.WithError(err).Error("admin: listing failed")
		middleware.SetFlash(c, "error", "Error consultando reportes")
		c.Redirect(http.StatusFound, "/")
		return
	}

	var contratistas []string
	config.DB.Model(&models.Ruta{}).Distinct("contratista").Order("contratista").Pluck("contratista", &contratistas)

	activity.Record(c, &ident.UserID, models.ActionAccessAdmin,
		fmt.Sprintf("Acceso al panel de administración de rutas - Página %d", page))

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Reportes":          rows,
		"Contratistas":      contratistas,
		"FechaFiltro":       fecha,
		"ContratistaFiltro": contratista,
		"Pagination":        paginate(page, perPage, total),
		"Username":          ident.Username,
		"IsAdmin":           ident.Role.AtLeast(models.RoleAdmin),
		"Flashes":           middleware.TakeFlashes(c),
	})
}

type statusInput struct {
	ReporteID uint   `json:"reporte_id"`
	Status    string `json:"status"`
}

type estadoSnapshot struct {
	Estado      string
	RutaCodigo  string
	Contratista string
}

// Store accessors behind function variables so the handler can be exercised
// without a live database.
var findReporteEstado = func(reporteID uint) (estadoSnapshot, error) {
	var current estadoSnapshot
	err := config.DB.Model(&models.Reporte{}).
		Select("estado", "ruta_codigo", "contratista").
		Where("id = ?", reporteID).
		Take(&current).Error
	return current, err
}

var updateReporteEstado = func(reporteID uint, estado string) error {
	return config.DB.Model(&models.Reporte{}).
		Where("id = ?", reporteID).
		Update("estado", estado).Error
}

var recordStatusChange = activity.RecordTarget

// UpdateReporteStatus transitions a reporte's estado. Only the status column
// changes; the submission timestamps stay untouched.
func UpdateReporteStatus(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	var input statusInput
	if err := c.ShouldBindJSON(&input); err != nil || input.ReporteID == 0 || input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "reporte_id y status son requeridos"})
		return
	}

	current, err := findReporteEstado(input.ReporteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Reporte no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := updateReporteEstado(input.ReporteID, input.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	recordStatusChange(c, &ident.UserID, models.ActionUpdateReporteStatus, "reporte", input.ReporteID,
		fmt.Sprintf("Ruta %s (%s): %s -> %s", current.RutaCodigo, current.Contratista, current.Estado, input.Status))

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Estado actualizado"})
}

// APIReportes is the unauthenticated JSON listing with fecha/contratista
// filters and no pagination.
func APIReportes(c *gin.Context) {
	fecha := c.DefaultQuery("fecha", time.Now().Format("2006-01-02"))
	contratista := c.Query("contratista")

	var rows []reporteRow
	err := reporteQuery(fecha, contratista).
		Select(reporteSelect).
		Order("reportes_rutas.hora_reporte DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		data = append(data, apiRow(row))
	}
	c.JSON(http.StatusOK, data)
}

func apiRow(row reporteRow) gin.H {
	out := gin.H{
		"id":                      row.ID,
		"contratista":             row.Contratista,
		"ruta_id":                 row.RutaID,
		"ruta_codigo":             row.RutaCodigo,
		"clientes_pendientes":     row.ClientesPendientes,
		"cajas_camion":            row.CajasCamion,
		"hora_aproximada_ingreso": row.HoraAproximadaIngreso,
		"ubicacion_exacta":        row.UbicacionExacta,
		"latitud":                 row.Latitud,
		"longitud":                row.Longitud,
		"hora_exacta_envio":       row.HoraExactaEnvio.Format("2006-01-02 15:04:05"),
		"comentarios":             row.Comentarios,
		"fecha_reporte":           row.FechaReporte.Format("2006-01-02"),
		"hora_reporte":            row.HoraReporte.Format("2006-01-02 15:04:05"),
		"estado":                  row.Estado,
		"reportado_por":           row.ReportadoPor,
		"supervisor":              row.Supervisor,
		"placa":                   row.Placa,
		"tipo":                    row.Tipo,
	}
	if g := ubicacionGeoJSON(row.Ubicacion); g != "" {
		out["ubicacion"] = g
	}
	return out
}

// CrearReportePrueba inserts a synthetic reporte against the first ruta so
// the admin panel can be smoke-tested.
func CrearReportePrueba(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	var ruta models.Ruta
	if err := config.DB.Order("id").First(&ruta).Error; err != nil {
		middleware.SetFlash(c, "error", "No hay rutas disponibles para crear un reporte de prueba.")
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	lat, lon := 10.123456, -84.123456
	ubicacion, _ := ubicacionWKB(&lat, &lon)

	now := time.Now()
	reporte := models.Reporte{
		Contratista:           ruta.Contratista,
		RutaID:                ruta.ID,
		RutaCodigo:            ruta.Codigo,
		ClientesPendientes:    5,
		CajasCamion:           10,
		HoraAproximadaIngreso: now.Format("15:04"),
		UbicacionExacta:       "Ubicación de prueba",
		Latitud:               &lat,
		Longitud:              &lon,
		Ubicacion:             ubicacion,
		HoraExactaEnvio:       now,
		Comentarios:           "Reporte de prueba creado automáticamente",
		FechaReporte:          now,
		HoraReporte:           now,
		Estado:                models.EstadoActivo,
		ReportadoPor:          ident.Username,
	}
	if err := config.DB.Create(&reporte).Error; err != nil {
		middleware.SetFlash(c, "error", "Error al crear reporte de prueba: "+err.Error())
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	middleware.SetFlash(c, "success",
		fmt.Sprintf("Reporte de prueba #%d creado exitosamente para la fecha %s", reporte.ID, now.Format("2006-01-02")))
	c.Redirect(http.StatusFound, "/admin")
}
