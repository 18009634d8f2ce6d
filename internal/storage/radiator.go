package storage

import (
	"errors"
	"radiatool/internal/constants"
	"time"
)

var ErrNotFound = errors.New("not found")

// RadiatorRow строка листа матрицы в том виде, как она лежит в справочнике.
type RadiatorRow struct {
	Article     string  `json:"article"`
	DisplayName string  `json:"name"`
	PowerW      float64 `json:"power"`
	WeightKg    float64 `json:"weight"`
	VolumeM3    float64 `json:"volume"`
	UnitPrice   float64 `json:"price"`
}

// Sheet лист матрицы: одно подключение и один тип радиатора.
type Sheet struct {
	Name         string               `json:"name"`
	Connection   constants.Connection `json:"connection"`
	RadiatorType string               `json:"type"`
	Rows         []RadiatorRow        `json:"rows"`
}

// RadiatorVariant типоразмер радиатора с уже разобранными высотой и длиной.
// Height и Length равны нулю, если в наименовании не нашлось размеров.
type RadiatorVariant struct {
	Article      string               `json:"article"`
	DisplayName  string               `json:"name"`
	Connection   constants.Connection `json:"connection"`
	RadiatorType string               `json:"type"`
	Height       int                  `json:"height"`
	Length       int                  `json:"length"`
	PowerW       float64              `json:"power"`
	WeightKg     float64              `json:"weight"`
	VolumeM3     float64              `json:"volume"`
	UnitPrice    float64              `json:"price"`
}

func (v RadiatorVariant) HasDimensions() bool {
	return v.Height > 0 && v.Length > 0
}

type BracketVariant struct {
	Article     string  `json:"article"`
	DisplayName string  `json:"name"`
	UnitPrice   float64 `json:"price"`
	MaxLoadKg   float64 `json:"max_load,omitempty"`
}

// Mapping подтверждённое соответствие наименования конкурента радиатору из матрицы.
type Mapping struct {
	CompetitorName string               `json:"competitor_name,omitempty"`
	Connection     constants.Connection `json:"connection"`
	RadiatorType   string               `json:"rad_type"`
	Article        string               `json:"meteor_art"`
	Name           string               `json:"meteor_name"`
	ConfirmedAt    time.Time            `json:"confirmed_at"`
}
