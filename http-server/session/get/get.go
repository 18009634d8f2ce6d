package get

import (
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"radiatool/internal/session"
)

type SessionProvider interface {
	Get(id string) (session.Session, error)
}

func GetSession(log *slog.Logger, store SessionProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.session.GetSession"

		id := chi.URLParam(r, "id")

		sess, err := store.Get(id)
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "сессия не найдена", http.StatusNotFound)
			return
		}
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка получения сессии")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, sess.View())
	}
}
