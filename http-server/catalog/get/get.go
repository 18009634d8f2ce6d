package get

import (
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"radiatool/internal/catalog"
	"radiatool/internal/constants"
)

type CatalogProvider interface {
	Current() *catalog.Catalog
}

type connectionOption struct {
	Code  constants.Connection `json:"code"`
	Label string               `json:"label"`
	Types []string             `json:"types"`
}

type mountingOption struct {
	Code  constants.MountingMode `json:"code"`
	Label string                 `json:"label"`
}

type optionsResponse struct {
	Connections []connectionOption `json:"connections"`
	Mountings   []mountingOption   `json:"mountings"`
	Heights     []int              `json:"heights"`
	Lengths     []int              `json:"lengths"`
	Sheets      []string           `json:"sheets"`
}

// GetOptions варианты выбора формы и листы, реально загруженные в справочник.
func GetOptions(log *slog.Logger, cat CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := optionsResponse{
			Heights: constants.Heights,
			Lengths: constants.Lengths,
			Sheets:  cat.Current().SheetNames(),
		}

		for _, c := range constants.Connections {
			resp.Connections = append(resp.Connections, connectionOption{
				Code:  c,
				Label: c.Label(),
				Types: constants.RadiatorTypes(c),
			})
		}
		for _, m := range constants.MountingModes {
			resp.Mountings = append(resp.Mountings, mountingOption{Code: m, Label: m.Label()})
		}

		render.JSON(w, r, resp)
	}
}

type gridResponse struct {
	Sheet        string               `json:"sheet"`
	Connection   constants.Connection `json:"connection"`
	RadiatorType string               `json:"type"`
	Heights      []int                `json:"heights"`
	Rows         []catalog.GridRow    `json:"rows"`
}

// GetGrid матрица листа: ?connection=right-valve&type=22.
func GetGrid(log *slog.Logger, cat CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.catalog.GetGrid"

		conn, ok := constants.ParseConnection(r.URL.Query().Get("connection"))
		if !ok {
			http.Error(w, "неизвестный тип подключения", http.StatusBadRequest)
			return
		}

		radType := r.URL.Query().Get("type")
		if !constants.TypeAllowed(conn, radType) {
			http.Error(w, "тип радиатора недоступен для подключения", http.StatusBadRequest)
			return
		}

		rows, ok := cat.Current().Grid(conn, radType)
		if !ok {
			log.With(slog.String("op", op)).Warn("лист не найден в справочнике",
				slog.String("sheet", constants.SheetName(conn, radType)))
			http.Error(w, "лист не найден", http.StatusNotFound)
			return
		}

		render.JSON(w, r, gridResponse{
			Sheet:        constants.SheetName(conn, radType),
			Connection:   conn,
			RadiatorType: radType,
			Heights:      constants.Heights,
			Rows:         rows,
		})
	}
}

func GetBrackets(log *slog.Logger, cat CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, cat.Current().Brackets())
	}
}
