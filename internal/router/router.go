package router

import (
	"net/http"

	blobmem "bird-collector/internal/adapters/blobstore/memory"
	"bird-collector/internal/adapters/storage"
	mem "bird-collector/internal/adapters/storage/memory"
	"bird-collector/internal/config"
	"bird-collector/internal/docs"
	"bird-collector/internal/domain/associations"
	"bird-collector/internal/domain/birds"
	"bird-collector/internal/domain/feedings"
	"bird-collector/internal/domain/photos"
	"bird-collector/internal/domain/toys"
	"bird-collector/internal/middleware"
	"bird-collector/internal/platform/logger"
	"bird-collector/internal/ports/auth"
	"bird-collector/internal/ports/blobstore"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcionales: nil => in-memory.
	Repos     *storage.Repos
	BlobStore blobstore.Store

	// Vacío => config.DefaultBucket.
	Bucket string

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	repos := mem.NewRepos()
	if opts.Repos != nil {
		repos = *opts.Repos
	}

	blobs := opts.BlobStore
	if blobs == nil {
		blobs = blobmem.New(config.DefaultBaseURL)
	}

	bucket := opts.Bucket
	if bucket == "" {
		bucket = config.DefaultBucket
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))
	r.Use(middleware.RequestLog(log, "/health"))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	docs.SwaggerInfo.BasePath = "/"
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	birdsSvc := birds.NewService(repos.Birds)
	toysSvc := toys.NewService(repos.Toys)
	feedingsSvc := feedings.NewService(repos.Feedings)
	photosSvc := photos.NewService(repos.Photos, blobs, birdsSvc, photos.Options{Bucket: bucket}, log)
	assocSvc := associations.NewService(associations.Deps{
		Birds:    birdsSvc,
		Toys:     toysSvc,
		Links:    repos.Links,
		Feedings: feedingsSvc,
		Photos:   repos.Photos,
		Logger:   log,
	})

	// Rutas por módulo
	birds.RegisterRoutes(r, birdsSvc)
	toys.RegisterRoutes(r, toysSvc)
	associations.RegisterRoutes(r, assocSvc)
	photos.RegisterRoutes(r, photosSvc)

	return r
}
