package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cashvault/cashcard/internal/access"
	"github.com/cashvault/cashcard/internal/config"
	relayhttp "github.com/cashvault/cashcard/internal/http"
	"github.com/cashvault/cashcard/internal/http/api/handlers"
	"github.com/cashvault/cashcard/internal/service"
)

// RegisterRoutes wires public and authenticated routes onto the engine.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, svc *service.CardService, jwtCfg config.JWTConfig) {
	if r == nil || db == nil || svc == nil {
		return
	}

	r.GET("/healthz", handlers.Health)

	authHandler := handlers.NewAuthHandler(db, jwtCfg)
	r.POST("/login", authHandler.Login)

	manager := access.NewManager(
		access.NewBasicProvider(db),
		access.NewTokenProvider(jwtCfg.Secret),
	)

	cardHandler := handlers.NewCardHandler(svc)
	cards := r.Group("/cashcards")
	cards.Use(relayhttp.AuthMiddleware(manager))
	cards.GET("", cardHandler.List)
	cards.POST("", cardHandler.Create)
	cards.GET("/:id", cardHandler.Get)
	cards.PUT("/:id", cardHandler.Update)
	cards.DELETE("/:id", cardHandler.Delete)
}
