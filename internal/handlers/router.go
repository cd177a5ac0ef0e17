package handlers

import (
	"github.com/SAP-F-2025/interview-service/internal/config"
	"github.com/SAP-F-2025/interview-service/internal/services"
	"github.com/SAP-F-2025/interview-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	logger           utils.Logger
	interviewHandler *InterviewHandler
	configHandler    *ConfigHandler
}

func NewHandlerManager(
	interviewService services.InterviewService,
	settings *config.Settings,
	metrics *services.Metrics,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		logger:           logger,
		interviewHandler: NewInterviewHandler(interviewService, logger),
		configHandler:    NewConfigHandler(settings, metrics, logger),
	}
}

// NewRouter builds a gin engine with the request middleware and all routes.
func (hm *HandlerManager) NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		utils.RequestID(),
		utils.LoggerMiddleware(hm.logger),
		utils.ContextLogger(hm.logger),
	)
	hm.SetupRoutes(router)
	return router
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/config", hm.configHandler.GetConfig)
		v1.GET("/metrics", hm.configHandler.GetMetrics)

		interviews := v1.Group("/interviews")
		{
			interviews.POST("", hm.interviewHandler.StartInterview)
			interviews.GET("/:id", hm.interviewHandler.GetInterview)
			interviews.DELETE("/:id", hm.interviewHandler.AbandonInterview)
			interviews.GET("/:id/question", hm.interviewHandler.GetCurrentQuestion)
			interviews.POST("/:id/answers", hm.interviewHandler.SubmitAnswer)
			interviews.GET("/:id/results", hm.interviewHandler.GetResults)
			interviews.POST("/:id/complete", hm.interviewHandler.CompleteInterview)
			interviews.GET("/:id/export/:format", hm.interviewHandler.ExportReport)
		}
	}
}
