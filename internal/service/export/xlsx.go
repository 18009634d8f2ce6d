package export

import (
	"fmt"
	"github.com/xuri/excelize/v2"
	"radiatool/internal/service/bom"
	"unicode/utf8"
)

const sheetName = "Спецификация"

func XLSX(spec bom.BillOfMaterials) ([]byte, error) {
	const op = "service.export.XLSX"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: стиль шапки: %w", op, err)
	}

	cellStyle, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return nil, fmt.Errorf("%s: стиль ячеек: %w", op, err)
	}

	moneyFormat := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{Border: border, CustomNumFmt: &moneyFormat})
	if err != nil {
		return nil, fmt.Errorf("%s: стиль цен: %w", op, err)
	}

	rows := make([][]interface{}, 0, len(spec.Items)+2)
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	rows = append(rows, header)
	for _, it := range spec.Items {
		rows = append(rows, row(it))
	}
	rows = append(rows, totalRow(spec.Totals))

	widths := make([]int, len(Header))
	for i, values := range rows {
		cell := cellName(1, i+1)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("%s: строка %d: %w", op, i+1, err)
		}

		for col, v := range values {
			if n := utf8.RuneCountInString(formatCell(v)); n > widths[col] {
				widths[col] = n
			}
		}
	}

	last := len(rows)
	lastCol := len(Header)
	if err := f.SetCellStyle(sheetName, "A1", cellName(lastCol, 1), headerStyle); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if last > 1 {
		if err := f.SetCellStyle(sheetName, "A2", cellName(lastCol, last), cellStyle); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for _, col := range moneyColumns {
			if err := f.SetCellStyle(sheetName, cellName(col, 2), cellName(col, last), moneyStyle); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	for i, w := range widths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, name, name, float64(min(w+2, 50))); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
