package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rutas_tracker/internal/activity"
	"rutas_tracker/internal/config"
	"rutas_tracker/internal/middleware"
	"rutas_tracker/internal/models"
)

type loginInput struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// ShowLogin renders the login form. Authenticated callers go straight to the
// admin panel.
func ShowLogin(c *gin.Context) {
	if _, ok := middleware.Authenticate(c); ok {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flashes": middleware.TakeFlashes(c),
	})
}

// Login verifies username/password against an active account and establishes
// the session. Failures never disclose which factor was wrong.
func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBind(&input); err != nil {
		loginFailed(c, input.Username)
		return
	}

	var user models.User
	err := config.DB.Where("username = ? AND is_active = ?", input.Username, true).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).Error("login: user lookup failed")
		}
		loginFailed(c, input.Username)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		loginFailed(c, input.Username)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate session token"})
		return
	}

	if err := config.DB.Model(&user).Update("last_login", time.Now()).Error; err != nil {
		logrus.WithError(err).Warn("login: could not update last_login")
	}

	c.SetCookie(middleware.SessionCookie, token, 72*3600, "/", "", false, true)
	activity.Record(c, &user.ID, models.ActionLogin, "Usuario "+user.Username+" inició sesión")

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
				"role":     user.Role,
			},
		})
		return
	}

	middleware.SetFlash(c, "success", "¡Bienvenido "+user.Username+"!")
	next := c.Query("next")
	if next == "" || next[0] != '/' {
		next = "/admin"
	}
	c.Redirect(http.StatusFound, next)
}

func loginFailed(c *gin.Context, username string) {
	activity.Record(c, nil, models.ActionFailedLogin, "Intento de login fallido para usuario: "+username)
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario o contraseña incorrectos"})
		return
	}
	middleware.SetFlash(c, "error", "Usuario o contraseña incorrectos")
	c.Redirect(http.StatusFound, "/login")
}

// Logout invalidates the session. Calling it without one is a no-op.
func Logout(c *gin.Context) {
	if ident, ok := middleware.Authenticate(c); ok {
		activity.Record(c, &ident.UserID, models.ActionLogout, "Usuario "+ident.Username+" cerró sesión")
		middleware.SetFlash(c, "info", "Sesión cerrada correctamente")
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
