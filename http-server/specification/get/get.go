package get

import (
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"radiatool/internal/service/bom"
	"radiatool/internal/service/export"
	"radiatool/internal/session"
)

type SpecificationProvider interface {
	ForSession(id string) (bom.BillOfMaterials, error)
}

func GetSpecification(log *slog.Logger, spec SpecificationProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.specification.GetSpecification"

		res, ok := load(w, r, log, op, spec)
		if !ok {
			return
		}

		render.JSON(w, r, res)
	}
}

// CopyArticles столбец артикулов текстом, для вставки в чужую таблицу.
func CopyArticles(log *slog.Logger, spec SpecificationProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.specification.CopyArticles"

		res, ok := load(w, r, log, op, spec)
		if !ok {
			return
		}

		render.PlainText(w, r, export.Articles(res))
	}
}

func CopyQuantities(log *slog.Logger, spec SpecificationProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.specification.CopyQuantities"

		res, ok := load(w, r, log, op, spec)
		if !ok {
			return
		}

		render.PlainText(w, r, export.Quantities(res))
	}
}

func load(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, spec SpecificationProvider) (bom.BillOfMaterials, bool) {
	id := chi.URLParam(r, "id")

	res, err := spec.ForSession(id)
	if errors.Is(err, session.ErrNotFound) {
		http.Error(w, "сессия не найдена", http.StatusNotFound)
		return bom.BillOfMaterials{}, false
	}
	if err != nil {
		log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка расчёта спецификации")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return bom.BillOfMaterials{}, false
	}

	return res, true
}
