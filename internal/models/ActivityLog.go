package models

import "time"

// ActivityLog is the append-only audit trail. Rows are only ever inserted.
type ActivityLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `json:"user_id,omitempty"`
	User       *User     `json:"-" gorm:"foreignKey:UserID"`
	Action     string    `gorm:"not null" json:"action"`
	TargetType *string   `json:"target_type,omitempty"`
	TargetID   *uint     `json:"target_id,omitempty"`
	Details    string    `json:"details"`
	IPAddress  string    `json:"ip_address"`
	Timestamp  time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

// TableName keeps the historical table name.
func (ActivityLog) TableName() string {
	return "activity_log"
}

// Action codes written to the trail.
const (
	ActionLogin               = "login"
	ActionFailedLogin         = "failed_login"
	ActionLogout              = "logout"
	ActionAccessAdmin         = "access_admin"
	ActionUpdateReporteStatus = "update_reporte_status"
	ActionExportReportes      = "export_reportes"
	ActionReloadRutas         = "reload_rutas"
)
