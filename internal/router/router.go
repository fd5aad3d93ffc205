// internal/router/router.go
package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/database"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/handlers"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/service"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}
func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
}

func Setup(log *zap.Logger, svc *service.SessionService, bank *models.QuizBank) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(CORS())

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	// Handlers
	dataHandler := handlers.NewDataHandler(log, svc)
	resultsHandler := handlers.NewResultsHandler(log, svc)
	quizHandler := handlers.NewQuizHandler(log, bank)

	// Session minting is the one endpoint worth limiting; sensor
	// ingestion is legitimately high frequency.
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 30,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")
	{
		data := api.Group("/data")
		{
			data.POST("/session/start", limiter, dataHandler.StartSession)
			data.POST("/sensor", dataHandler.IngestSensor)
			data.POST("/quiz-response", dataHandler.RecordQuizResponse)
			data.POST("/session/end", dataHandler.EndSession)
			data.GET("/session/:sessionId", dataHandler.GetSession)

			// Persisted-session reads need the relational store.
			if database.DB != nil {
				data.GET("/sessions/list", dataHandler.ListStoredSessions)
				data.GET("/sessions/:sessionId", dataHandler.GetStoredSession)
			}
		}

		results := api.Group("/results")
		{
			results.POST("/calculate", resultsHandler.Calculate)
			results.GET("/metrics/:sessionId", resultsHandler.SessionMetrics)
		}

		quiz := api.Group("/quiz")
		{
			quiz.GET("/difficulty/:difficulty", quizHandler.ByDifficulty)
			quiz.POST("/verify", quizHandler.Verify)
		}

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	return router
}
