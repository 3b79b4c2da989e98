package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"rutas_tracker/internal/controllers"
	"rutas_tracker/internal/middleware"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())
	r.Use(middleware.SecurityHeaders())
	r.SetHTMLTemplate(controllers.Templates())

	AuthRoutes(r)
	RutaRoutes(r)
	ReporteRoutes(r)
	AdminRoutes(r)

	return r
}
