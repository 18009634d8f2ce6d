package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"radiatool/internal/catalog"
	"radiatool/internal/config"
	"radiatool/internal/metrics"
	"radiatool/internal/service/specification"
	"radiatool/internal/session"
	"radiatool/internal/storage/excel"
	"radiatool/internal/storage/jsonfile"
	"radiatool/internal/storage/mysql"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	var db *mysql.Storage
	if cfg.UsesMySQL() {
		var err error
		db, err = mysql.New(*cfg)
		if err != nil {
			log.Error("failed to open db", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()
	}

	var source catalog.Source = excel.New(cfg.Catalog.MatrixPath, cfg.Catalog.BracketsPath)
	if cfg.Catalog.Source == "mysql" {
		source = db
	}

	holder := catalog.NewHolder(source)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := holder.Reload(ctx)
	cancel()
	if err != nil {
		// без справочника сервер поднимается, данные можно перечитать из админки
		log.Error("failed to load catalog", slog.String("error", err.Error()))
	}

	cat := holder.Current()
	metrics.CatalogVariants.Set(float64(cat.VariantCount()))
	metrics.CatalogBrackets.Set(float64(cat.BracketCount()))
	log.Info("catalog loaded",
		slog.String("source", cfg.Catalog.Source),
		slog.Int("sheets", len(cat.SheetNames())),
		slog.Int("variants", cat.VariantCount()),
		slog.Int("brackets", cat.BracketCount()),
	)

	var mappings MappingStore
	if cfg.Mappings.Source == "mysql" {
		mappings = db
	} else {
		mappings, err = jsonfile.New(cfg.Mappings.Path)
		if err != nil {
			log.Error("failed to open mappings", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	sessions := session.NewStore(cfg.SessionIdle)
	specService := specification.NewService(holder, sessions, cfg.WeightDecimals)

	appCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.RunCleanup(appCtx, time.Minute, func(active int) {
		metrics.SessionsActive.Set(float64(active))
	})

	log.Info("server started", slog.String("address", cfg.Address))

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, holder, sessions, specService, mappings),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		<-appCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown server", slog.String("error", err.Error()))
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed start server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped")
}

type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	// Всегда пишем в основной вывод (stdout)
	if h.coreHandler.Enabled(ctx, r.Level) {
		err = h.coreHandler.Handle(ctx, r)
		if err != nil {
			return err
		}
	}

	// ошибки дублируются в файл, сбой записи в файл не мешает основному выводу
	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		_ = h.errorHandler.Handle(ctx, r.Clone())
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

func setupLogger(env string) *slog.Logger {
	level := slog.LevelDebug
	if env == envProd {
		level = slog.LevelInfo
	}

	var coreHandler slog.Handler
	switch env {
	case envDev:
		coreHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	case envLocal, envProd:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	// в файл пишутся только ошибки
	errorFile, err := os.OpenFile("errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		slog.Warn("Cannot open error log file", "error", err)
		return slog.New(coreHandler)
	}

	errorHandler := slog.NewTextHandler(errorFile, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	return slog.New(&dualHandler{
		coreHandler:  coreHandler,
		errorHandler: errorHandler,
	})
}
