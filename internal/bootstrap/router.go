package bootstrap

import (
	"database/sql"
	"log"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	adminlayers "github.com/inmoview/explorer-backend/internal/admin/layers"
	adminmedia "github.com/inmoview/explorer-backend/internal/admin/media"
	httpapi "github.com/inmoview/explorer-backend/internal/api/http"
	"github.com/inmoview/explorer-backend/internal/api/http/middleware"
	authmw "github.com/inmoview/explorer-backend/internal/auth/middleware"
	explorerhttp "github.com/inmoview/explorer-backend/internal/explorer/http"
	"github.com/inmoview/explorer-backend/internal/explorer/repository"
	"github.com/inmoview/explorer-backend/internal/explorer/service"
	storage "github.com/inmoview/explorer-backend/internal/storage/s3"
	"github.com/inmoview/explorer-backend/internal/unittypes"
	unittypesrepo "github.com/inmoview/explorer-backend/internal/unittypes/repository"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	SQLDB       *sql.DB
	Redis       *redis.Client
	Auth        *firebaseauth.Client
	Store       *storage.Client
	SnapshotTTL time.Duration
}

// BuildRouter wires the public explorer surface and the authenticated
// admin surface. It returns the engine plus the cached snapshot source so
// the warmup scheduler can share it.
func BuildRouter(dep RouterDeps) (*gin.Engine, *repository.CachedSource) {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	explorerRepo := repository.NewRepo(dep.DB)

	var source service.SnapshotSource = explorerRepo
	var cache *repository.CachedSource
	if dep.Redis != nil {
		cache = repository.NewCachedSource(explorerRepo, dep.Redis, dep.SnapshotTTL)
		source = cache
	}

	invalidate := func(c *gin.Context, projectID string) {
		if cache == nil {
			return
		}
		slug, err := explorerRepo.ProjectSlugByID(c.Request.Context(), projectID)
		if err != nil {
			log.Printf("[warn] operation=cache_invalidate project_id=%s error=%v", projectID, err)
			return
		}
		if err := cache.Invalidate(c.Request.Context(), slug); err != nil {
			log.Printf("[warn] operation=cache_invalidate project=%s error=%v", slug, err)
		}
	}

	explorerSvc := service.NewExplorerService(source)
	explorerHandler := explorerhttp.New(explorerSvc)

	public := r.Group("/")
	public.Use(middleware.RateLimitMiddleware(rate.Limit(20), 40))
	explorerHandler.Register(public)

	api := r.Group("/api/v1")
	explorerHandler.RegisterAPI(api.Group("/explorer"))

	admin := api.Group("/admin")
	if dep.Auth != nil {
		admin.Use(authmw.FirebaseAuthMiddleware(dep.Auth))
	} else {
		log.Println("[warn] admin routes running without authentication (no Firebase client)")
	}

	layersRepo := adminlayers.NewRepo(dep.DB)
	adminlayers.NewHandler(layersRepo, invalidate).Register(admin)

	if dep.Store != nil {
		mediaRepo := adminmedia.NewRepo(dep.DB)
		adminmedia.NewHandler(mediaRepo, dep.Store, invalidate).Register(admin)
	} else {
		log.Println("[warn] media routes disabled (no object storage client)")
	}

	if dep.SQLDB != nil {
		utRepo := unittypesrepo.NewUnitTypeRepository(dep.SQLDB)
		unittypes.NewHandler(utRepo, invalidate).Register(admin)
	}

	return r, cache
}
