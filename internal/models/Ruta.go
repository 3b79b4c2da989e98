package models

import "gorm.io/gorm"

// Ruta is a reference delivery route loaded from the contractor spreadsheet.
// Rows are replaced wholesale on each import; a ruta may not be replaced
// while reportes still reference it.
type Ruta struct {
	gorm.Model
	Ruta        string `json:"ruta" gorm:"not null"`
	Codigo      string `json:"codigo"`
	Placa       string `json:"placa"`
	Supervisor  string `json:"supervisor"`
	Contratista string `json:"contratista" gorm:"not null"`
	Tipo        string `json:"tipo"`

	Reportes []Reporte `gorm:"foreignKey:RutaID" json:"reportes,omitempty"`
}
