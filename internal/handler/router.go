package handler

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	News      *NewsHandler
	Analytics *AnalyticsHandler
	Chat      *ChatHandler
	Domains   *DomainHandler
	Auth      *AuthHandler
	Images    *ImageHandler
}

// NewRouter mounts every route. The dashboard still calls the news,
// analytics and domains routes under /auth and chat under /api, so those
// paths are kept as aliases.
func NewRouter(h Handlers, frontendURL string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: true,
	}))

	registerDataRoutes(r.Group(""), h)

	r.POST("/chat", h.Chat.PostChat)
	r.POST("/api/chat", h.Chat.PostChat)
	r.GET("/health", h.Domains.GetHealth)

	auth := r.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/reset-password", h.Auth.ResetPassword)
	auth.POST("/verify-email", h.Auth.VerifyEmail)
	auth.POST("/resend-verification", h.Auth.ResendVerification)
	auth.POST("/google", h.Auth.GoogleSignIn)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/username/:username", h.Auth.GetUsername)
	registerDataRoutes(auth, h)

	images := r.Group("/images")
	images.POST("/upload/:username", h.Images.UploadProfileImage)
	images.GET("/:image_id", h.Images.GetImage)

	return r
}

func registerDataRoutes(g *gin.RouterGroup, h Handlers) {
	g.GET("/news/latest/:limit", h.News.GetLatestNews)
	g.GET("/news/:domain", h.News.GetNewsByDomain)
	g.GET("/analytics/sentiment", h.Analytics.GetSentimentAnalytics)
	g.GET("/domains", h.Domains.GetDomains)
}
