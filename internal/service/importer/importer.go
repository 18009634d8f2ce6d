// Package importer загрузка количеств из чужой таблицы "артикул - количество"
// в ячейки матрицы.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"io"
	"path/filepath"
	"radiatool/internal/service/quantity"
	"radiatool/internal/session"
	"radiatool/internal/storage"
	"radiatool/internal/storage/excel"
	"strconv"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// сколько первых строк просматривать в поисках шапки
const headerScanRows = 20

var (
	articleHeaders  = []string{"артикул", "art", "код"}
	quantityHeaders = []string{"кол-во", "количество", "qty"}
)

type Finder interface {
	FindArticle(article string) (storage.RadiatorVariant, bool)
}

type Cells interface {
	AddQuantity(id string, key session.CellKey, qty int) (int, error)
}

type Result struct {
	Loaded        int      `json:"loaded"`
	TotalQuantity int      `json:"total_quantity"`
	NotFound      []string `json:"not_found"`
}

// Line строка импорта после группировки.
type Line struct {
	Article  string
	Quantity int
}

// ReadFile строки таблицы из xlsx или csv с разделителем ";".
func ReadFile(filename string, r io.Reader) ([][]string, error) {
	const op = "service.importer.ReadFile"

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		rows, err := excel.ReadRows(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return rows, nil
	case ".csv", ".txt":
		rows, err := ReadCSV(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return rows, nil
	}

	return nil, fmt.Errorf("%s: %s: %w", op, filename, ErrUnsupportedFormat)
}

// ReadCSV BOM в начале файла, если есть, отбрасывается.
func ReadCSV(r io.Reader) ([][]string, error) {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(dec)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	return cr.ReadAll()
}

// Lines находит колонки артикула и количества по шапке (по умолчанию первая и вторая),
// отбрасывает пустые, "итого" и неположительные строки, суммирует повторы.
func Lines(rows [][]string) []Line {
	artCol, qtyCol, start := findColumns(rows)

	var (
		lines    []Line
		index    = make(map[string]int)
		overflow = make(map[string]bool)
	)

	for _, row := range rows[start:] {
		art := strings.ReplaceAll(cell(row, artCol), " ", "")
		if art == "" || strings.EqualFold(art, "итого") {
			continue
		}

		qty := parseQuantity(cell(row, qtyCol))
		if qty <= 0 {
			continue
		}

		if i, ok := index[art]; ok {
			sum, ok := quantity.Add(lines[i].Quantity, qty)
			if !ok {
				overflow[art] = true
			}
			lines[i].Quantity = sum
			continue
		}
		index[art] = len(lines)
		lines = append(lines, Line{Article: art, Quantity: qty})
	}

	if len(overflow) == 0 {
		return lines
	}

	// артикул с переполненной суммой не загружается
	kept := lines[:0]
	for _, l := range lines {
		if !overflow[l.Article] {
			kept = append(kept, l)
		}
	}
	return kept
}

// Apply прибавляет количества к ячейкам сессии. Каждый артикул ищется по всем листам.
func Apply(id string, lines []Line, finder Finder, cells Cells) (Result, error) {
	const op = "service.importer.Apply"

	res := Result{NotFound: []string{}}

	for _, l := range lines {
		v, ok := finder.FindArticle(l.Article)
		if !ok {
			res.NotFound = append(res.NotFound, l.Article)
			continue
		}

		key := session.CellKey{Connection: v.Connection, RadiatorType: v.RadiatorType, Article: v.Article}
		if _, err := cells.AddQuantity(id, key, l.Quantity); err != nil {
			return res, fmt.Errorf("%s: %w", op, err)
		}

		res.Loaded++
		res.TotalQuantity += l.Quantity
	}

	return res, nil
}

func findColumns(rows [][]string) (artCol, qtyCol, start int) {
	for i, row := range rows {
		if i >= headerScanRows {
			break
		}

		a, q := -1, -1
		for j, c := range row {
			c = strings.ToLower(strings.TrimSpace(c))
			if a < 0 && containsAny(c, articleHeaders) {
				a = j
				continue
			}
			if q < 0 && containsAny(c, quantityHeaders) {
				q = j
			}
		}

		if a >= 0 && q >= 0 {
			return a, q, i + 1
		}
	}

	return 0, 1, 0
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseQuantity дробная часть отбрасывается, ошибка разбора и значение больше quantity.Max дают ноль.
func parseQuantity(s string) int {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !(f > 0) || f > quantity.Max {
		return 0
	}
	return int(f)
}
