package models

import (
	"time"

	"gorm.io/gorm"
)

// EstadoActivo is the state a reporte is created in.
const EstadoActivo = "activo"

// ReportadoPorDefault is used when the submitter leaves no identity.
const ReportadoPorDefault = "Sistema"

// Reporte is a field-submitted status update against a Ruta for one day.
//
// RutaCodigo is a snapshot of the route code taken at submission time and is
// never re-joined against rutas: historical reportes keep the code that was
// valid when they were sent, even if the route record changes later.
// FechaReporte, HoraReporte and HoraExactaEnvio are server-assigned at
// insertion and never touched by later status updates.
type Reporte struct {
	gorm.Model
	Contratista           string `json:"contratista" gorm:"not null"`
	RutaID                uint   `json:"ruta_id" gorm:"not null"`
	Ruta                  *Ruta  `json:"-" gorm:"foreignKey:RutaID"`
	RutaCodigo            string `json:"ruta_codigo" gorm:"not null"`
	ClientesPendientes    int    `json:"clientes_pendientes" gorm:"not null;default:0"`
	CajasCamion           int    `json:"cajas_camion" gorm:"not null;default:0"`
	HoraAproximadaIngreso string `json:"hora_aproximada_ingreso" gorm:"not null"` // HH:MM, 24h

	UbicacionExacta string   `json:"ubicacion_exacta"`
	Latitud         *float64 `json:"latitud,omitempty"`
	Longitud        *float64 `json:"longitud,omitempty"`
	// WKB point (SRID 4326) derived from Latitud/Longitud when both are set.
	Ubicacion []byte `json:"-" gorm:"type:bytea"`

	HoraExactaEnvio time.Time `json:"hora_exacta_envio"`
	Comentarios     string    `json:"comentarios"`
	FechaReporte    time.Time `json:"fecha_reporte" gorm:"type:date;not null"`
	HoraReporte     time.Time `json:"hora_reporte" gorm:"not null"`
	Estado          string    `json:"estado" gorm:"not null;default:activo"`
	ReportadoPor    string    `json:"reportado_por" gorm:"not null;default:Sistema"`
}

// TableName keeps the historical table name.
func (Reporte) TableName() string {
	return "reportes_rutas"
}
