package routes

import (
	"github.com/gin-gonic/gin"

	"rutas_tracker/internal/controllers"
)

func RutaRoutes(r *gin.Engine) {
	r.GET("/", controllers.Index)
	r.GET("/get_rutas/:contratista", controllers.GetRutas)
}
