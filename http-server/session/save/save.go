package save

import (
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"radiatool/internal/session"
)

type SessionCreator interface {
	Create() session.Session
}

// CreateSession новая форма подбора с настройками по умолчанию.
func CreateSession(log *slog.Logger, store SessionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.session.CreateSession"

		sess := store.Create()
		log.Debug("создана сессия", slog.String("op", op), slog.String("id", sess.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, sess.View())
	}
}
