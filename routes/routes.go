package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"superclinic/config"
	"superclinic/handlers"
	"superclinic/utils"
)

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	registerHealthRoute(r)

	api := r.Group("/api/v1")
	{
		api.POST("/chat", hb.ChatHandler)
		api.DELETE("/chat/:userid", hb.ClearChatHandler)
		api.GET("/doctors", hb.ListDoctorsHandler)
		api.GET("/doctors/:name/availability", hb.DoctorAvailabilityHandler)
	}

	registerStaticRoutes(r)
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo || !status.Redis {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    "ok",
			"message":   "Hi, I'm Super Clinic",
			"mongo":     status.Mongo,
			"redis":     status.Redis,
			"checkedAt": status.CheckedAt,
		})
	})
}

// registerStaticRoutes serves the bundled web client when a build exists.
func registerStaticRoutes(r *gin.Engine) {
	dir := config.AppConfig.StaticDir
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); err != nil {
		return
	}
	r.Static("/assets", filepath.Join(dir, "assets"))
	r.NoRoute(func(c *gin.Context) {
		c.File(filepath.Join(dir, "index.html"))
	})
}
