package calculate

import (
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"radiatool/internal/constants"
	"radiatool/internal/service/bom"
)

type Calculator interface {
	Calculate(entries []bom.CellEntry, opts bom.Options) bom.BillOfMaterials
}

type request struct {
	Cells   []bom.CellEntry `json:"cells"`
	Options bom.Options     `json:"options"`
}

// CalculateSpecification расчёт спецификации без сессии, ячейки берутся из тела запроса.
func CalculateSpecification(log *slog.Logger, calc Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.specification.CalculateSpecification"

		var req request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("ошибка парсинга JSON")
			http.Error(w, "ошибка парсинга JSON", http.StatusBadRequest)
			return
		}

		if req.Options.Mounting == "" {
			req.Options.Mounting = constants.MountingWall
		}
		mode, ok := constants.ParseMountingMode(string(req.Options.Mounting))
		if !ok {
			http.Error(w, "неизвестный тип крепления", http.StatusBadRequest)
			return
		}
		req.Options.Mounting = mode

		// подключение можно передать подписью листа
		entries := make([]bom.CellEntry, 0, len(req.Cells))
		for _, e := range req.Cells {
			if c, ok := constants.ParseConnection(string(e.Connection)); ok {
				e.Connection = c
			}
			entries = append(entries, e)
		}

		render.JSON(w, r, calc.Calculate(entries, req.Options))
	}
}
