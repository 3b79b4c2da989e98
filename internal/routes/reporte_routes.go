package routes

import (
	"github.com/gin-gonic/gin"

	"rutas_tracker/internal/controllers"
)

func ReporteRoutes(r *gin.Engine) {
	r.POST("/submit_reporte", controllers.SubmitReporte)
	r.GET("/api/reportes", controllers.APIReportes)
}
