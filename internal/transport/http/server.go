package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"linkstash/internal/ai"
	appsvc "linkstash/internal/app"
	"linkstash/internal/bootstrap"
	"linkstash/internal/platform/rabbitmq"
	"linkstash/internal/repository"
	"linkstash/internal/scrape"
	"linkstash/internal/session"
	"linkstash/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.LoadHTMLGlob(app.Config.App.TemplatesGlob)

	sessionTTL := time.Duration(app.Config.Session.TTLHours) * time.Hour
	router.Use(session.Middleware(app.Sessions, app.Config.Session.CookieName, sessionTTL))

	userRepo := repository.NewUserRepository(app.DB)
	stashRepo := repository.NewStashRepository(app.DB)

	accountService := appsvc.NewAccountService(userRepo)
	fetcher := scrape.NewFetcher(time.Duration(app.Config.Fetch.TimeoutSeconds) * time.Second)
	llmClient := ai.NewGeminiClient(ai.GeminiConfig{
		BaseURL: app.Config.LLM.BaseURL,
		APIKey:  app.Config.LLM.APIKey,
		Model:   app.Config.LLM.Model,
	})
	summaryService := appsvc.NewSummaryService(fetcher, llmClient)

	var events appsvc.StashEventPublisher
	if app.MQConn != nil {
		events = rabbitmq.NewStashEventPublisher(app.MQConn, app.Config.RabbitMQ.StashEventQueue)
	}
	stashService := appsvc.NewStashService(stashRepo, summaryService, events)

	pageHandler := handler.NewPageHandler(accountService)
	stashHandler := handler.NewStashHandler(stashService)
	healthHandler := handler.NewHealthHandler(app)

	router.GET("/", pageHandler.Index)
	router.POST("/login", pageHandler.Login)
	router.GET("/logout", pageHandler.Logout)
	router.GET("/dashboard", stashHandler.Dashboard)
	router.POST("/stash_url", stashHandler.StashURL)
	router.POST("/delete_stash/:url_id", stashHandler.DeleteStash)
	router.GET("/healthz", healthHandler.Check)

	return router
}
