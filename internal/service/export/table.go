// Package export выгрузка спецификации в xlsx и csv.
package export

import (
	"fmt"
	"radiatool/internal/service/bom"
	"strconv"
	"strings"
	"time"
)

var Header = []string{"№", "Артикул", "Наименование", "Мощность", "Цена", "Скидка %", "Цена со скидкой", "Кол-во", "Сумма"}

// колонки с денежным форматом, с единицы
var moneyColumns = []int{5, 7, 9}

// FileName имя файла выгрузки, например спецификация_20250301_1030.xlsx.
func FileName(now time.Time, ext string) string {
	return fmt.Sprintf("спецификация_%s.%s", now.Format("20060102_1504"), ext)
}

// row значения строки в порядке Header.
func row(it bom.LineItem) []interface{} {
	return []interface{}{
		it.Row,
		it.Article,
		it.Name,
		it.PowerW,
		it.UnitPrice,
		it.DiscountPercent,
		it.DiscountedUnitPrice,
		it.Quantity,
		it.LineTotal,
	}
}

func totalRow(t bom.Totals) []interface{} {
	return []interface{}{
		"",
		"",
		"Итого",
		"",
		"",
		"",
		"",
		fmt.Sprintf("%d / %d", t.RadiatorQuantity, t.BracketQuantity),
		t.Sum,
	}
}

// formatCell для csv: числа без экспоненты, дробная часть через точку.
func formatCell(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Articles столбец артикулов для быстрого копирования.
func Articles(spec bom.BillOfMaterials) string {
	lines := make([]string, len(spec.Items))
	for i, it := range spec.Items {
		lines[i] = it.Article
	}
	return strings.Join(lines, "\n")
}

// Quantities столбец количеств в том же порядке, что и Articles.
func Quantities(spec bom.BillOfMaterials) string {
	lines := make([]string, len(spec.Items))
	for i, it := range spec.Items {
		lines[i] = strconv.Itoa(it.Quantity)
	}
	return strings.Join(lines, "\n")
}
