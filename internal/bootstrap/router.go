package bootstrap

import (
	"time"

	httpapi "github.com/cyberbirth/cyberbirth-backend/internal/api/http"
	"github.com/cyberbirth/cyberbirth-backend/internal/api/http/middleware"
	birthdayhttp "github.com/cyberbirth/cyberbirth-backend/internal/birthdays/http"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/repository"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/service"
	"github.com/cyberbirth/cyberbirth-backend/internal/wishes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Logger         *zap.Logger
	Store          *repository.Store
	Service        *service.BirthdayService
	Wishes         *wishes.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store, dep.Wishes)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	birthdayhttp.New(dep.Service, dep.Wishes).Register(api)

	return r
}
