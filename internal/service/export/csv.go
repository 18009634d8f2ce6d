package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"radiatool/internal/service/bom"
)

// CSV разделитель ";", кодировка UTF-8 с BOM, чтобы Excel открывал кириллицу.
func CSV(spec bom.BillOfMaterials) ([]byte, error) {
	const op = "service.export.CSV"

	var buf bytes.Buffer
	tw := transform.NewWriter(&buf, unicode.UTF8BOM.NewEncoder())

	w := csv.NewWriter(tw)
	w.Comma = ';'

	records := make([][]string, 0, len(spec.Items)+2)
	records = append(records, Header)
	for _, it := range spec.Items {
		records = append(records, texts(row(it)))
	}
	records = append(records, texts(totalRow(spec.Totals)))

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func texts(values []interface{}) []string {
	res := make([]string, len(values))
	for i, v := range values {
		res[i] = formatCell(v)
	}
	return res
}
