// Package specification собирает спецификацию по сессии или по явному запросу
// и отдаёт её выгрузки.
package specification

import (
	"errors"
	"fmt"
	"radiatool/internal/catalog"
	"radiatool/internal/metrics"
	"radiatool/internal/service/bom"
	"radiatool/internal/service/export"
	"radiatool/internal/session"
	"time"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

var ErrUnknownFormat = errors.New("unknown export format")

type CatalogProvider interface {
	Current() *catalog.Catalog
}

type SessionProvider interface {
	Get(id string) (session.Session, error)
}

// File готовая выгрузка.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Service struct {
	catalog        CatalogProvider
	sessions       SessionProvider
	weightDecimals int
	now            func() time.Time
}

func NewService(cat CatalogProvider, sessions SessionProvider, weightDecimals int) *Service {
	return &Service{
		catalog:        cat,
		sessions:       sessions,
		weightDecimals: weightDecimals,
		now:            time.Now,
	}
}

// Calculate расчёт без сессии, порядок entries задаёт вызывающий.
func (s *Service) Calculate(entries []bom.CellEntry, opts bom.Options) bom.BillOfMaterials {
	return s.build("request", entries, opts)
}

func (s *Service) ForSession(id string) (bom.BillOfMaterials, error) {
	const op = "service.specification.ForSession"

	sess, err := s.sessions.Get(id)
	if err != nil {
		return bom.BillOfMaterials{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.build("session", sess.CellEntries(), sess.Options), nil
}

func (s *Service) Export(id, format string) (File, error) {
	const op = "service.specification.Export"

	spec, err := s.ForSession(id)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", op, err)
	}

	var file File
	switch format {
	case FormatXLSX:
		file.Data, err = export.XLSX(spec)
		file.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		file.Data, err = export.CSV(spec)
		file.ContentType = "text/csv; charset=utf-8"
	default:
		return File{}, fmt.Errorf("%s: %q: %w", op, format, ErrUnknownFormat)
	}
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", op, err)
	}

	file.Name = export.FileName(s.now(), format)
	metrics.Exports.WithLabelValues(format).Inc()

	return file, nil
}

func (s *Service) build(source string, entries []bom.CellEntry, opts bom.Options) bom.BillOfMaterials {
	start := time.Now()
	defer func() {
		metrics.SpecificationDuration.Observe(time.Since(start).Seconds())
	}()

	opts.WeightDecimals = s.weightDecimals
	spec := bom.Build(s.catalog.Current(), entries, opts)

	metrics.SpecificationsBuilt.WithLabelValues(source).Inc()
	return spec
}
