package routes

import (
	"github.com/gin-gonic/gin"

	"rutas_tracker/internal/controllers"
	"rutas_tracker/internal/middleware"
	"rutas_tracker/internal/models"
)

func AdminRoutes(r *gin.Engine) {
	authed := r.Group("")
	authed.Use(middleware.RequireAuth())
	{
		authed.GET("/admin", controllers.Admin)
		authed.POST("/update_reporte_status", controllers.UpdateReporteStatus)
		authed.GET("/export_reportes", controllers.ExportReportes)
		authed.GET("/crear_reporte_prueba", controllers.CrearReportePrueba)
	}

	adminOnly := r.Group("")
	adminOnly.Use(middleware.RequireMinRole(models.RoleAdmin))
	{
		adminOnly.GET("/reload_rutas", controllers.ReloadRutas)
	}
}
