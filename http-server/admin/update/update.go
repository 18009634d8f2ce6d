package update

import (
	"context"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"radiatool/internal/catalog"
	"radiatool/internal/metrics"
	"time"
)

type CatalogReloader interface {
	Reload(ctx context.Context) error
	Current() *catalog.Catalog
}

type reloadResponse struct {
	Sheets   int `json:"sheets"`
	Variants int `json:"variants"`
	Brackets int `json:"brackets"`
}

// ReloadCatalogAdmin перечитывает справочники. При ошибке остаётся прежний справочник.
func ReloadCatalogAdmin(log *slog.Logger, reloader CatalogReloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.ReloadCatalogAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		if err := reloader.Reload(ctx); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка перезагрузки справочников")
			http.Error(w, "ошибка перезагрузки справочников", http.StatusInternalServerError)
			return
		}

		c := reloader.Current()
		metrics.CatalogVariants.Set(float64(c.VariantCount()))
		metrics.CatalogBrackets.Set(float64(c.BracketCount()))

		log.Info("справочники перезагружены",
			slog.String("op", op),
			slog.Int("variants", c.VariantCount()),
			slog.Int("brackets", c.BracketCount()),
		)

		render.JSON(w, r, reloadResponse{
			Sheets:   len(c.SheetNames()),
			Variants: c.VariantCount(),
			Brackets: c.BracketCount(),
		})
	}
}
