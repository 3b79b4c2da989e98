package routes

import (
	"github.com/gin-gonic/gin"

	"rutas_tracker/internal/controllers"
)

func AuthRoutes(r *gin.Engine) {
	r.GET("/login", controllers.ShowLogin)
	r.POST("/login", controllers.Login)
	r.GET("/logout", controllers.Logout)
}
