package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(h *GameHandler, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		api.GET("/profile", h.GetProfile)

		coins := api.Group("/coins")
		{
			coins.POST("/add", h.AddCoins)
			coins.POST("/spend", h.SpendCoins)
		}

		api.GET("/daily", h.GetDaily)
		api.POST("/daily/claim", h.ClaimDaily)

		api.GET("/worlds", h.ListWorlds)
		api.GET("/worlds/:world/levels", h.ListLevels)
		api.POST("/levels/:id/attempts", h.StartAttempt)
		api.POST("/attempts/:id/complete", h.CompleteAttempt)

		skins := api.Group("/skins")
		{
			skins.GET("", h.ListSkins)
			skins.POST("/:id/buy", h.BuySkin)
			skins.POST("/:id/equip", h.EquipSkin)
		}
	}

	return r
}
