package save

import (
	"context"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"radiatool/internal/catalog"
	"radiatool/internal/constants"
	"radiatool/internal/storage"
	"strings"
	"time"
)

type MappingSaver interface {
	SaveMapping(ctx context.Context, m storage.Mapping) error
}

type CatalogProvider interface {
	Current() *catalog.Catalog
}

type request struct {
	CompetitorName string `json:"competitor_name"`
	Connection     string `json:"connection"`
	RadiatorType   string `json:"rad_type"`
	Article        string `json:"meteor_art"`
}

// SaveMappingAdmin подтверждение соответствия: артикул должен быть в справочнике,
// наименование берётся оттуда же.
func SaveMappingAdmin(log *slog.Logger, saver MappingSaver, cat CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.SaveMappingAdmin"

		var req request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "ошибка парсинга JSON", http.StatusBadRequest)
			return
		}

		name := strings.TrimSpace(req.CompetitorName)
		if name == "" {
			http.Error(w, "не указано наименование", http.StatusBadRequest)
			return
		}

		conn, ok := constants.ParseConnection(req.Connection)
		if !ok {
			http.Error(w, "неизвестный тип подключения", http.StatusBadRequest)
			return
		}

		v, ok := cat.Current().Variant(conn, req.RadiatorType, strings.TrimSpace(req.Article))
		if !ok {
			http.Error(w, "радиатор не найден", http.StatusNotFound)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		m := storage.Mapping{
			CompetitorName: name,
			Connection:     v.Connection,
			RadiatorType:   v.RadiatorType,
			Article:        v.Article,
			Name:           v.DisplayName,
			ConfirmedAt:    time.Now().UTC().Truncate(time.Second),
		}
		if err := saver.SaveMapping(ctx, m); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка сохранения соответствия")
			http.Error(w, "ошибка сохранения соответствия", http.StatusInternalServerError)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, m)
	}
}
