package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rutas_tracker/internal/activity"
	"rutas_tracker/internal/config"
	"rutas_tracker/internal/importer"
	"rutas_tracker/internal/middleware"
	"rutas_tracker/internal/models"
)

// Index renders the public submission form with the contractor dropdown.
func Index(c *gin.Context) {
	var contratistas []string
	err := config.DB.Model(&models.Ruta{}).
		Distinct("contratista").
		Where("contratista <> ''").
		Order("contratista").
		Pluck("contratista", &contratistas).Error
	if err != nil {
		logrus.WithError(err).Error("index: could not list contratistas")
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Contratistas": contratistas,
		"Flashes":      middleware.TakeFlashes(c),
	})
}

type rutaOption struct {
	ID         uint   `json:"id"`
	Ruta       string `json:"ruta"`
	Codigo     string `json:"codigo"`
	Supervisor string `json:"supervisor"`
	Placa      string `json:"placa"`
	Tipo       string `json:"tipo"`
}

// GetRutas returns the routes operated by one contractor.
func GetRutas(c *gin.Context) {
	contratista := c.Param("contratista")

	var rutas []rutaOption
	err := config.DB.Model(&models.Ruta{}).
		Select("id", "ruta", "codigo", "supervisor", "placa", "tipo").
		Where("contratista = ?", contratista).
		Order("ruta").
		Scan(&rutas).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch rutas"})
		return
	}
	if rutas == nil {
		rutas = []rutaOption{}
	}
	c.JSON(http.StatusOK, rutas)
}

// ReloadRutas replaces the rutas table from the spreadsheet. Admin only.
func ReloadRutas(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	path := config.GetEnv("RUTAS_XLSX", "DB_Rutas.xlsx")
	result, err := importer.LoadRutas(config.DB, path)
	if err != nil {
		logrus.WithError(err).Error("reload_rutas failed")
		middleware.SetFlash(c, "error", "Error recargando rutas desde Excel")
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	middleware.SetFlash(c, "success", "Rutas recargadas exitosamente desde Excel")
	activity.Record(c, &ident.UserID, models.ActionReloadRutas,
		fmt.Sprintf("Rutas recargadas desde Excel (%d importadas, %d omitidas)", result.Imported, result.Skipped))
	c.Redirect(http.StatusFound, "/admin")
}
