package upload

import (
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"radiatool/internal/catalog"
	"radiatool/internal/metrics"
	"radiatool/internal/service/importer"
	"radiatool/internal/session"
)

const maxUploadSize = 10 << 20

type SessionCells interface {
	Get(id string) (session.Session, error)
	AddQuantity(id string, key session.CellKey, qty int) (int, error)
}

type CatalogProvider interface {
	Current() *catalog.Catalog
}

// ImportArticles загрузка файла "артикул - количество" (xlsx или csv) в ячейки сессии.
func ImportArticles(log *slog.Logger, store SessionCells, cat CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.import.ImportArticles"

		id := chi.URLParam(r, "id")

		if _, err := store.Get(id); err != nil {
			if errors.Is(err, session.ErrNotFound) {
				http.Error(w, "сессия не найдена", http.StatusNotFound)
				return
			}
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка получения сессии")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "файл не передан", http.StatusBadRequest)
			return
		}
		defer file.Close()

		rows, err := importer.ReadFile(header.Filename, file)
		if err != nil {
			metrics.Imports.WithLabelValues("bad_file").Inc()
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("не удалось прочитать файл импорта")
			http.Error(w, "не удалось прочитать файл", http.StatusBadRequest)
			return
		}

		res, err := importer.Apply(id, importer.Lines(rows), cat.Current(), store)
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "сессия не найдена", http.StatusNotFound)
			return
		}
		if err != nil {
			metrics.Imports.WithLabelValues("error").Inc()
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка импорта")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		metrics.Imports.WithLabelValues("ok").Inc()
		metrics.ImportNotFound.Add(float64(len(res.NotFound)))
		log.Info("импорт выполнен",
			slog.String("op", op),
			slog.String("file", header.Filename),
			slog.Int("loaded", res.Loaded),
			slog.Int("not_found", len(res.NotFound)),
		)

		render.JSON(w, r, res)
	}
}
