package handlers

import (
	"log/slog"
	"net/http"

	"github.com/camden-git/articlesbackend/config"
	"github.com/camden-git/articlesbackend/logging"
	"github.com/camden-git/articlesbackend/repository"
	"github.com/camden-git/articlesbackend/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// NewRouter wires repositories, the article writer and every handler onto a chi router.
func NewRouter(cfg config.Config, db *gorm.DB, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	authorRepo := repository.NewGormAuthorRepository(db)
	regionRepo := repository.NewGormRegionRepository(db)
	articleRepo := repository.NewGormArticleRepository(db)
	writer := services.NewArticleWriter(db, cfg.RegionIDPolicy)

	authorHandler := NewAuthorHandler(authorRepo)
	regionHandler := NewRegionHandler(regionRepo)
	articleHandler := NewArticleHandler(articleRepo, writer)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logging.StdLogger(logger, slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(corsHandler.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", articleHandler.ListArticles)
			r.Post("/", articleHandler.CreateArticle)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", articleHandler.GetArticle)
				r.Put("/", articleHandler.UpdateArticle)
				r.Delete("/", articleHandler.DeleteArticle)
			})
		})

		r.Route("/authors", func(r chi.Router) {
			r.Get("/", authorHandler.ListAuthors)
			r.Post("/", authorHandler.CreateAuthor)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", authorHandler.GetAuthor)
				r.Put("/", authorHandler.UpdateAuthor)
				r.Delete("/", authorHandler.DeleteAuthor)
			})
		})

		r.Route("/regions", func(r chi.Router) {
			r.Get("/", regionHandler.ListRegions)
			r.Post("/", regionHandler.CreateRegion)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", regionHandler.GetRegion)
				r.Put("/", regionHandler.UpdateRegion)
				r.Delete("/", regionHandler.DeleteRegion)
			})
		})
	})

	return r
}
