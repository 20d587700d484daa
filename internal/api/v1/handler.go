// Package v1 exposes the conversion service over HTTP.
package v1

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jhonny97or/Skus-Diarios/internal/config"
	"github.com/Jhonny97or/Skus-Diarios/internal/converter"
)

// Handler is the V1 API handler.
type Handler struct {
	cfg       *config.AppConfig
	log       *zap.Logger
	converter *converter.Converter
	downloads *downloadStore
}

// NewHandler creates the V1 API handler.
func NewHandler(cfg *config.AppConfig, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		cfg:       cfg,
		log:       log,
		converter: converter.New(log.Named("converter")),
		downloads: newDownloadStore(),
	}
}

// RegisterRoutes registers the V1 API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.POST("/convert", h.Convert)
	router.POST("/convert/stream", h.ConvertStream)
	router.GET("/convert/download/:token", h.DownloadConversion)
}
