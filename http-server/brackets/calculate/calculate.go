package calculate

import (
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"radiatool/internal/catalog"
	"radiatool/internal/constants"
	"radiatool/internal/service/brackets"
)

type CatalogProvider interface {
	Current() *catalog.Catalog
}

type request struct {
	RadiatorType string                 `json:"type"`
	Length       int                    `json:"length"`
	Height       int                    `json:"height"`
	Mounting     constants.MountingMode `json:"mounting"`
	Quantity     int                    `json:"quantity"`
}

type bracketLine struct {
	Article  string  `json:"article"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Found    bool    `json:"found"`
}

// CalculateBrackets подбор кронштейнов к одному радиатору с ценами из справочника.
// Артикулы, которых нет в справочнике, возвращаются с found=false.
// В спецификацию такие кронштейны не попадают.
func CalculateBrackets(log *slog.Logger, cat CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.brackets.CalculateBrackets"

		var req request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("ошибка парсинга JSON")
			http.Error(w, "ошибка парсинга JSON", http.StatusBadRequest)
			return
		}

		mode, ok := constants.ParseMountingMode(string(req.Mounting))
		if !ok {
			http.Error(w, "неизвестный тип крепления", http.StatusBadRequest)
			return
		}

		c := cat.Current()
		lines := []bracketLine{}
		for _, need := range brackets.Select(req.RadiatorType, req.Length, req.Height, mode, req.Quantity) {
			line := bracketLine{Article: need.Article, Quantity: need.Quantity}
			if b, ok := c.Bracket(need.Article); ok {
				line.Name = b.DisplayName
				line.Price = b.UnitPrice
				line.Found = true
			}
			lines = append(lines, line)
		}

		render.JSON(w, r, lines)
	}
}
