package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	getadmin "radiatool/http-server/admin/get"
	saveadmin "radiatool/http-server/admin/save"
	upadmin "radiatool/http-server/admin/update"
	calcbrackets "radiatool/http-server/brackets/calculate"
	getcatalog "radiatool/http-server/catalog/get"
	generate_excel "radiatool/http-server/generate-report/generate-excel"
	"radiatool/http-server/import/upload"
	getsession "radiatool/http-server/session/get"
	"radiatool/http-server/session/remove"
	savesession "radiatool/http-server/session/save"
	upsession "radiatool/http-server/session/update"
	calcspec "radiatool/http-server/specification/calculate"
	getspec "radiatool/http-server/specification/get"
	"radiatool/internal/catalog"
	"radiatool/internal/config"
	"radiatool/internal/middleware/auth"
	"radiatool/internal/service/specification"
	"radiatool/internal/session"
)

type MappingStore interface {
	getadmin.MappingProvider
	saveadmin.MappingSaver
}

func routes(cfg config.Config, log *slog.Logger, holder *catalog.Holder, sessions *session.Store, spec *specification.Service, mappings MappingStore) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.Handler())

	// справочники
	router.Get("/api/catalog/options", getcatalog.GetOptions(log, holder))
	router.Get("/api/catalog/grid", getcatalog.GetGrid(log, holder))
	router.Get("/api/catalog/brackets", getcatalog.GetBrackets(log, holder))

	// расчёты без сессии
	router.Post("/api/brackets/calculate", calcbrackets.CalculateBrackets(log, holder))
	router.Post("/api/specification/calculate", calcspec.CalculateSpecification(log, spec))

	// форма подбора
	router.Post("/api/sessions", savesession.CreateSession(log, sessions))
	router.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Get("/", getsession.GetSession(log, sessions))
		r.Delete("/", remove.DeleteSession(log, sessions))
		r.Put("/options", upsession.UpdateOptions(log, sessions))
		r.Put("/cells", upsession.UpdateCell(log, sessions, holder))
		r.Delete("/cells", remove.ClearCells(log, sessions))
		r.Post("/import", upload.ImportArticles(log, sessions, holder))

		r.Get("/specification", getspec.GetSpecification(log, spec))
		r.Get("/copy/articles", getspec.CopyArticles(log, spec))
		r.Get("/copy/quantities", getspec.CopyQuantities(log, spec))

		r.Get("/export/xlsx", generate_excel.GenerateReportExcel(log, spec))
		r.Get("/export/csv", generate_excel.GenerateReportCSV(log, spec))
	})

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(log, cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/mappings", getadmin.GetMappingsAdmin(log, mappings))
	adminRouter.Post("/mappings", saveadmin.SaveMappingAdmin(log, mappings, holder))
	adminRouter.Post("/catalog/reload", upadmin.ReloadCatalogAdmin(log, holder))

	router.Mount("/api/admin", adminRouter)

	frontendDir := cfg.FrontendDir
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("Папка фронтенда не найдена, отдаётся только API", "path", frontendDir)
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	router.With(auth.BasicAuth(log, cfg.AdminLogin, cfg.AdminPass)).Handle("/admin/*",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
		}),
	)

	// SPA fallback: любой другой путь отдаёт index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
