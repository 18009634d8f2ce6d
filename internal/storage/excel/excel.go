// Package excel читает справочники радиаторов и кронштейнов из xlsx-файлов.
package excel

import (
	"context"
	"fmt"
	"github.com/xuri/excelize/v2"
	"io"
	"radiatool/internal/constants"
	"radiatool/internal/storage"
	"strconv"
	"strings"
)

type Storage struct {
	matrixPath   string
	bracketsPath string
}

func New(matrixPath, bracketsPath string) *Storage {
	return &Storage{matrixPath: matrixPath, bracketsPath: bracketsPath}
}

// GetRadiatorSheets читает все листы матрицы вида "VK-правое 10".
// Листы с другими именами пропускаются.
func (s *Storage) GetRadiatorSheets(ctx context.Context) ([]storage.Sheet, error) {
	const op = "storage.excel.GetRadiatorSheets"

	f, err := excelize.OpenFile(s.matrixPath)
	if err != nil {
		return nil, fmt.Errorf("%s: не удалось открыть матрицу: %w", op, err)
	}
	defer f.Close()

	var sheets []storage.Sheet
	for _, name := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if strings.EqualFold(strings.TrimSpace(name), constants.BracketsTab) {
			continue
		}

		conn, radType, ok := constants.ParseSheetName(name)
		if !ok {
			continue
		}

		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка чтения листа %q: %w", op, name, err)
		}

		sheets = append(sheets, storage.Sheet{
			Name:         name,
			Connection:   conn,
			RadiatorType: radType,
			Rows:         radiatorRows(rows),
		})
	}

	return sheets, nil
}

// GetBrackets читает справочник кронштейнов. Если отдельного файла нет,
// ищет лист "Кронштейны" в матрице.
func (s *Storage) GetBrackets(ctx context.Context) ([]storage.BracketVariant, error) {
	const op = "storage.excel.GetBrackets"

	path, sheet := s.bracketsPath, ""
	if path == "" {
		path, sheet = s.matrixPath, constants.BracketsTab
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: не удалось открыть справочник кронштейнов: %w", op, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения листа %q: %w", op, sheet, err)
	}

	return bracketRows(rows), nil
}

// ReadRows первый лист загруженной книги как таблица строк.
func ReadRows(r io.Reader) ([][]string, error) {
	const op = "storage.excel.ReadRows"

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rows, nil
}

type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		h[strings.TrimSpace(name)] = i
	}
	return h
}

func (h header) text(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// number пустые и нечисловые значения считаются нулём.
func (h header) number(row []string, col string) float64 {
	v := h.text(row, col)
	if v == "" {
		return 0
	}
	v = strings.ReplaceAll(v, "\u00a0", "")
	v = strings.ReplaceAll(v, " ", "")
	v = strings.ReplaceAll(v, ",", ".")

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func radiatorRows(rows [][]string) []storage.RadiatorRow {
	if len(rows) == 0 {
		return nil
	}

	h := newHeader(rows[0])
	if _, ok := h[constants.ColArticle]; !ok {
		return nil
	}

	res := make([]storage.RadiatorRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		art := h.text(row, constants.ColArticle)
		if art == "" {
			continue
		}

		res = append(res, storage.RadiatorRow{
			Article:     art,
			DisplayName: h.text(row, constants.ColName),
			PowerW:      h.number(row, constants.ColPower),
			WeightKg:    h.number(row, constants.ColWeight),
			VolumeM3:    h.number(row, constants.ColVolume),
			UnitPrice:   h.number(row, constants.ColPrice),
		})
	}

	return res
}

func bracketRows(rows [][]string) []storage.BracketVariant {
	if len(rows) == 0 {
		return nil
	}

	h := newHeader(rows[0])
	if _, ok := h[constants.ColArticle]; !ok {
		return nil
	}

	res := make([]storage.BracketVariant, 0, len(rows)-1)
	for _, row := range rows[1:] {
		art := h.text(row, constants.ColArticle)
		if art == "" {
			continue
		}

		res = append(res, storage.BracketVariant{
			Article:     art,
			DisplayName: h.text(row, constants.ColName),
			UnitPrice:   h.number(row, constants.ColPrice),
			MaxLoadKg:   h.number(row, constants.ColMaxLoad),
		})
	}

	return res
}
