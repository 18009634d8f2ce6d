package catalog

import (
	"context"
	"fmt"
	"golang.org/x/sync/errgroup"
	"radiatool/internal/constants"
	"radiatool/internal/storage"
	"sync/atomic"
)

// Source источник справочных данных: excel-файлы или mysql.
type Source interface {
	GetRadiatorSheets(ctx context.Context) ([]storage.Sheet, error)
	GetBrackets(ctx context.Context) ([]storage.BracketVariant, error)
}

// Load читает листы радиаторов и кронштейны параллельно.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	const op = "catalog.Load"

	var (
		sheets   []storage.Sheet
		brackets []storage.BracketVariant
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sheets, err = src.GetRadiatorSheets(gCtx)
		if err != nil {
			return fmt.Errorf("radiators: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		brackets, err = src.GetBrackets(gCtx)
		if err != nil {
			return fmt.Errorf("brackets: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return New(sheets, brackets), nil
}

// Holder отдаёт текущий справочник и подменяет его целиком при перезагрузке.
type Holder struct {
	src     Source
	current atomic.Pointer[Catalog]
}

func NewHolder(src Source) *Holder {
	h := &Holder{src: src}
	h.current.Store(New(nil, nil))
	return h
}

// Reload при ошибке оставляет прежний справочник.
func (h *Holder) Reload(ctx context.Context) error {
	c, err := Load(ctx, h.src)
	if err != nil {
		return err
	}
	h.current.Store(c)
	return nil
}

func (h *Holder) Current() *Catalog {
	return h.current.Load()
}

// Set подменяет справочник напрямую, используется в тестах и при старте без источника.
func (h *Holder) Set(c *Catalog) {
	h.current.Store(c)
}

// GridCell ячейка матрицы; Variant == nil, если радиатора такого размера нет.
type GridCell struct {
	Height  int                      `json:"height"`
	Length  int                      `json:"length"`
	Variant *storage.RadiatorVariant `json:"variant"`
}

type GridRow struct {
	Length int        `json:"length"`
	Cells  []GridCell `json:"cells"`
}

// Grid матрица листа: строки по длине, столбцы по высоте.
func (c *Catalog) Grid(conn constants.Connection, radiatorType string) ([]GridRow, bool) {
	if !c.HasSheet(conn, radiatorType) {
		return nil, false
	}

	rows := make([]GridRow, 0, len(constants.Lengths))
	for _, l := range constants.Lengths {
		row := GridRow{Length: l, Cells: make([]GridCell, 0, len(constants.Heights))}
		for _, h := range constants.Heights {
			gc := GridCell{Height: h, Length: l}
			if v, ok := c.VariantAt(conn, radiatorType, h, l); ok {
				v := v
				gc.Variant = &v
			}
			row.Cells = append(row.Cells, gc)
		}
		rows = append(rows, row)
	}

	return rows, true
}
