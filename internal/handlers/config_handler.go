package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/interview-service/internal/config"
	"github.com/SAP-F-2025/interview-service/internal/services"
	"github.com/SAP-F-2025/interview-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ConfigResponse lists what a client may pick when starting an interview.
type ConfigResponse struct {
	Roles            []string                     `json:"roles"`
	ExperienceLevels []string                     `json:"experience_levels"`
	Domains          []string                     `json:"domains"`
	DifficultyLevels []string                     `json:"difficulty_levels"`
	Interview        config.InterviewSettings     `json:"interview_settings"`
	ScoringRubric    map[string]map[string]string `json:"scoring_rubric"`
}

type ConfigHandler struct {
	BaseHandler
	settings *config.Settings
	metrics  *services.Metrics
}

func NewConfigHandler(settings *config.Settings, metrics *services.Metrics, logger utils.Logger) *ConfigHandler {
	return &ConfigHandler{
		BaseHandler: NewBaseHandler(logger),
		settings:    settings,
		metrics:     metrics,
	}
}

func (h *ConfigHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		Roles:            h.settings.Roles(),
		ExperienceLevels: h.settings.ExperienceLevels(),
		Domains:          h.settings.Domains(),
		DifficultyLevels: h.settings.DifficultyLevels(),
		Interview:        h.settings.Interview(),
		ScoringRubric:    h.settings.Rubric(),
	})
}

func (h *ConfigHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetSnapshot())
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "interview-service",
	})
}
