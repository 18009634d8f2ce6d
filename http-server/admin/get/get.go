package get

import (
	"context"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"radiatool/internal/storage"
	"time"
)

type MappingProvider interface {
	GetMappings(ctx context.Context) ([]storage.Mapping, error)
}

func GetMappingsAdmin(log *slog.Logger, provider MappingProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetMappingsAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		mappings, err := provider.GetMappings(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка получения соответствий")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		if mappings == nil {
			mappings = []storage.Mapping{}
		}

		render.JSON(w, r, mappings)
	}
}
