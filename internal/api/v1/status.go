package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Jhonny97or/Skus-Diarios/internal/resolver"
)

// StatusResponse describes the service and its active defaults.
type StatusResponse struct {
	Service        string             `json:"service"`
	Status         string             `json:"status"`
	DefaultWeights map[string]float64 `json:"defaultWeights"`
	UnitPrice      string             `json:"unitPrice"`
	WeekStrategy   string             `json:"weekStrategy"`
	WeekYear       int                `json:"weekYear"`
	Strategies     []string           `json:"strategies"`
}

// GetStatus reports the service status and active defaults.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	strategies := make([]string, 0, len(resolver.Known()))
	for _, s := range resolver.Known() {
		strategies = append(strategies, string(s))
	}

	c.JSON(http.StatusOK, StatusResponse{
		Service: "skus-diarios",
		Status:  "ok",
		DefaultWeights: map[string]float64{
			"lunes":     h.cfg.Weights.Monday,
			"martes":    h.cfg.Weights.Tuesday,
			"miercoles": h.cfg.Weights.Wednesday,
			"jueves":    h.cfg.Weights.Thursday,
			"viernes":   h.cfg.Weights.Friday,
			"sabado":    h.cfg.Weights.Saturday,
			"domingo":   h.cfg.Weights.Sunday,
		},
		UnitPrice:    decimal.NewFromFloat(h.cfg.Pricing.UnitPrice).StringFixed(2),
		WeekStrategy: h.cfg.Weeks.Strategy,
		WeekYear:     h.cfg.Weeks.Year,
		Strategies:   strategies,
	})
}
