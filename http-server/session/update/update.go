package update

import (
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"radiatool/internal/catalog"
	"radiatool/internal/constants"
	"radiatool/internal/metrics"
	"radiatool/internal/session"
	"radiatool/internal/storage"
)

type OptionsUpdater interface {
	UpdateOptions(id string, upd session.OptionsUpdate) (session.Session, error)
}

type CellUpdater interface {
	Get(id string) (session.Session, error)
	SetCell(id string, key session.CellKey, raw string) (session.CellResult, error)
}

type CatalogProvider interface {
	Current() *catalog.Catalog
}

// UpdateOptions подключение и тип можно передать кодом или подписью.
func UpdateOptions(log *slog.Logger, store OptionsUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.session.UpdateOptions"

		id := chi.URLParam(r, "id")

		var req session.OptionsUpdate
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("ошибка парсинга JSON")
			http.Error(w, "ошибка парсинга JSON", http.StatusBadRequest)
			return
		}

		if req.Connection != nil {
			c, ok := constants.ParseConnection(string(*req.Connection))
			if !ok {
				http.Error(w, "неизвестный тип подключения", http.StatusBadRequest)
				return
			}
			req.Connection = &c
		}
		if req.Mounting != nil {
			m, ok := constants.ParseMountingMode(string(*req.Mounting))
			if !ok {
				http.Error(w, "неизвестный тип крепления", http.StatusBadRequest)
				return
			}
			req.Mounting = &m
		}

		sess, err := store.UpdateOptions(id, req)
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "сессия не найдена", http.StatusNotFound)
			return
		}
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка обновления настроек")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, sess.View())
	}
}

type cellRequest struct {
	Connection   string `json:"connection"`
	RadiatorType string `json:"type"`
	Article      string `json:"article"`
	Height       int    `json:"height"`
	Length       int    `json:"length"`
	Value        string `json:"value"`
}

type cellResponse struct {
	session.CellResult
	Article string `json:"article"`
}

// UpdateCell правка ячейки. Ячейка задаётся артикулом или высотой и длиной
// на листе; без подключения и типа берётся текущий лист сессии.
// Недопустимый ввод возвращает 200 с accepted=false и прежним значением.
func UpdateCell(log *slog.Logger, store CellUpdater, cat CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.session.UpdateCell"

		id := chi.URLParam(r, "id")

		var req cellRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("ошибка парсинга JSON")
			http.Error(w, "ошибка парсинга JSON", http.StatusBadRequest)
			return
		}

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

		conn, radType := sess.Connection, sess.RadiatorType
		if req.Connection != "" {
			c, ok := constants.ParseConnection(req.Connection)
			if !ok {
				http.Error(w, "неизвестный тип подключения", http.StatusBadRequest)
				return
			}
			conn = c
		}
		if req.RadiatorType != "" {
			radType = req.RadiatorType
		}

		var (
			v     storage.RadiatorVariant
			found bool
		)
		if req.Article != "" {
			v, found = cat.Current().Variant(conn, radType, req.Article)
		} else {
			v, found = cat.Current().VariantAt(conn, radType, req.Height, req.Length)
		}
		if !found {
			http.Error(w, "радиатор не найден", http.StatusNotFound)
			return
		}

		key := session.CellKey{Connection: conn, RadiatorType: radType, Article: v.Article}
		res, err := store.SetCell(id, key, req.Value)
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "сессия не найдена", http.StatusNotFound)
			return
		}
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка правки ячейки")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		if !res.Accepted {
			metrics.CellEditsRejected.Inc()
			log.Debug("ввод отклонён", slog.String("op", op), slog.String("value", req.Value))
		}

		render.JSON(w, r, cellResponse{CellResult: res, Article: v.Article})
	}
}
