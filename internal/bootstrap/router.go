package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	httpapi "github.com/growthlab-hq/growth-backend/internal/api/http"
	"github.com/growthlab-hq/growth-backend/internal/api/http/middleware"
	assessmenthttp "github.com/growthlab-hq/growth-backend/internal/assessment/http"
	assessmentsvc "github.com/growthlab-hq/growth-backend/internal/assessment/service"
	"github.com/growthlab-hq/growth-backend/internal/auth"
	quadranthttp "github.com/growthlab-hq/growth-backend/internal/quadrant/http"
	quadrantsvc "github.com/growthlab-hq/growth-backend/internal/quadrant/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	AuthClient  *fbauth.Client
	Pool        *pgxpool.Pool
	Pipeline    *assessmentsvc.Pipeline
	Fusion      *quadrantsvc.Fusion
	Log         *zap.SugaredLogger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RequestID(dep.Log))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Pool)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(auth.WithUser(dep.AuthClient))

	assessmenthttp.NewHandler(dep.Pipeline).Register(api)
	quadranthttp.NewHandler(dep.Fusion).Register(api)

	return r
}
