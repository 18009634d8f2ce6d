// Package metrics метрики prometheus, отдаются на /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SpecificationsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radiatool_specifications_built_total",
			Help: "Количество рассчитанных спецификаций",
		},
		[]string{"source"},
	)

	SpecificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "radiatool_specification_duration_seconds",
			Help:    "Время расчёта спецификации",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	Exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radiatool_exports_total",
			Help: "Выгрузки спецификации по формату",
		},
		[]string{"format"},
	)

	CellEditsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "radiatool_cell_edits_rejected_total",
			Help: "Отклонённые правки ячеек матрицы",
		},
	)

	Imports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radiatool_imports_total",
			Help: "Импорт по артикулам",
		},
		[]string{"status"},
	)

	ImportNotFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "radiatool_import_not_found_total",
			Help: "Артикулы из импорта, не найденные в матрице",
		},
	)

	CatalogVariants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "radiatool_catalog_variants",
			Help: "Загружено типоразмеров радиаторов",
		},
	)

	CatalogBrackets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "radiatool_catalog_brackets",
			Help: "Загружено кронштейнов",
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "radiatool_sessions_active",
			Help: "Открытые сессии формы",
		},
	)
)
