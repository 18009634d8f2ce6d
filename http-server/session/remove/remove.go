package remove

import (
	"errors"
	"github.com/go-chi/chi/v5"
	"log/slog"
	"net/http"
	"radiatool/internal/session"
)

type CellsCleaner interface {
	ClearCells(id string) error
}

type SessionDeleter interface {
	Delete(id string)
}

// ClearCells очистка всех введённых количеств, настройки формы остаются.
func ClearCells(log *slog.Logger, store CellsCleaner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.session.ClearCells"

		err := store.ClearCells(chi.URLParam(r, "id"))
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "сессия не найдена", http.StatusNotFound)
			return
		}
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка очистки ячеек")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteSession(log *slog.Logger, store SessionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.Delete(chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}
