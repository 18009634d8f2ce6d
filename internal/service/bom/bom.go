// Package bom собирает спецификацию: радиаторы из матрицы, подобранные к ним кронштейны,
// скидки, суммы и итоги.
package bom

import (
	"github.com/shopspring/decimal"
	"radiatool/internal/constants"
	"radiatool/internal/service/brackets"
	"radiatool/internal/service/quantity"
	"radiatool/internal/storage"
	"sort"
	"strconv"
)

type Kind string

const (
	KindRadiator Kind = "radiator"
	KindBracket  Kind = "bracket"
)

// CellEntry значение ячейки матрицы: лист (подключение + тип), артикул и введённое выражение.
type CellEntry struct {
	Connection   constants.Connection `json:"connection"`
	RadiatorType string               `json:"type"`
	Article      string               `json:"article"`
	Value        string               `json:"value"`
}

type Options struct {
	RadiatorDiscount float64                `json:"radiator_discount"`
	BracketDiscount  float64                `json:"bracket_discount"`
	Mounting         constants.MountingMode `json:"mounting"`
	WeightDecimals   int                    `json:"-"` // знаков после запятой для веса в кг
}

// Catalog справочник, по которому разрешаются артикулы.
type Catalog interface {
	Variant(conn constants.Connection, radiatorType, article string) (storage.RadiatorVariant, bool)
	Bracket(article string) (storage.BracketVariant, bool)
}

type LineItem struct {
	Row                 int                  `json:"row"`
	Article             string               `json:"article"`
	Name                string               `json:"name"`
	Kind                Kind                 `json:"kind"`
	Quantity            int                  `json:"quantity"`
	UnitPrice           float64              `json:"unit_price"`
	DiscountPercent     float64              `json:"discount_percent"`
	DiscountedUnitPrice float64              `json:"discounted_unit_price"`
	LineTotal           float64              `json:"line_total"`
	PowerW              float64              `json:"power"`
	WeightKg            float64              `json:"weight"`
	VolumeM3            float64              `json:"volume"`
	Connection          constants.Connection `json:"connection,omitempty"`
	RadiatorType        string               `json:"type,omitempty"`
	Height              int                  `json:"height,omitempty"`
	Length              int                  `json:"length,omitempty"`
}

type Totals struct {
	Positions        int     `json:"positions"`
	RadiatorQuantity int     `json:"radiator_quantity"`
	BracketQuantity  int     `json:"bracket_quantity"`
	TotalQuantity    int     `json:"total_quantity"`
	RadiatorSum      float64 `json:"radiator_sum"`
	BracketSum       float64 `json:"bracket_sum"`
	Sum              float64 `json:"sum"`
	AveragePrice     float64 `json:"average_price"`
	PowerW           float64 `json:"power"`
	WeightKg         float64 `json:"weight"`
	VolumeM3         float64 `json:"volume"`
	Power            string  `json:"power_text"`
	Weight           string  `json:"weight_text"`
}

// Warning нагрузка на кронштейн больше допустимой.
type Warning struct {
	RadiatorArticle  string  `json:"radiator_article"`
	BracketArticle   string  `json:"bracket_article"`
	LoadPerBracketKg float64 `json:"load_per_bracket"`
	MaxLoadKg        float64 `json:"max_load"`
}

type BillOfMaterials struct {
	Items    []LineItem `json:"items"`
	Totals   Totals     `json:"totals"`
	Warnings []Warning  `json:"warnings,omitempty"`
}

// Build пересчитывает спецификацию целиком. Функция не меняет входные данные:
// ненайденные артикулы и нулевые количества просто пропускаются.
func Build(cat Catalog, entries []CellEntry, opts Options) BillOfMaterials {
	radDiscount := ClampPercent(opts.RadiatorDiscount)
	brDiscount := ClampPercent(opts.BracketDiscount)

	radiators := make([]LineItem, 0, len(entries))
	acc := newAccumulator()
	var warnings []Warning

	for _, e := range entries {
		qty := quantity.Parse(e.Value)
		if qty <= 0 {
			continue
		}

		v, ok := cat.Variant(e.Connection, e.RadiatorType, e.Article)
		if !ok {
			continue
		}

		price := discounted(v.UnitPrice, radDiscount)
		radiators = append(radiators, LineItem{
			Article:             v.Article,
			Name:                v.DisplayName,
			Kind:                KindRadiator,
			Quantity:            qty,
			UnitPrice:           v.UnitPrice,
			DiscountPercent:     radDiscount,
			DiscountedUnitPrice: price.InexactFloat64(),
			LineTotal:           lineTotal(price, qty).InexactFloat64(),
			PowerW:              v.PowerW,
			WeightKg:            v.WeightKg,
			VolumeM3:            v.VolumeM3,
			Connection:          v.Connection,
			RadiatorType:        v.RadiatorType,
			Height:              v.Height,
			Length:              v.Length,
		})

		// без размеров кронштейны не подобрать, сам радиатор остаётся
		if opts.Mounting == constants.MountingNone || !v.HasDimensions() {
			continue
		}

		for _, need := range brackets.Select(v.RadiatorType, v.Length, v.Height, opts.Mounting, qty) {
			b, ok := cat.Bracket(need.Article)
			if !ok {
				continue
			}

			bp := discounted(b.UnitPrice, brDiscount)
			acc.add(b, need.Quantity, lineTotal(bp, need.Quantity))

			if w, over := checkLoad(v, qty, b, need.Quantity); over {
				warnings = append(warnings, w)
			}
		}
	}

	sortRadiators(radiators)

	items := append(radiators, acc.items(brDiscount)...)
	for i := range items {
		items[i].Row = i + 1
	}

	return BillOfMaterials{
		Items:    items,
		Totals:   summarize(items, opts.WeightDecimals),
		Warnings: warnings,
	}
}

// sortRadiators: правое подключение первым, дальше по типу, высоте и длине.
func sortRadiators(items []LineItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		aOther := a.Connection != constants.ConnectionRightValve
		bOther := b.Connection != constants.ConnectionRightValve
		if aOther != bOther {
			return !aOther
		}

		at, bt := typeOrder(a.RadiatorType), typeOrder(b.RadiatorType)
		if at != bt {
			return at < bt
		}
		if a.Height != b.Height {
			return a.Height < b.Height
		}
		return a.Length < b.Length
	})
}

func typeOrder(t string) int {
	n, err := strconv.Atoi(t)
	if err != nil {
		return 1 << 30
	}
	return n
}

type bracketTotal struct {
	bracket  storage.BracketVariant
	quantity int
	total    decimal.Decimal
}

// accumulator складывает кронштейны от всех радиаторов, сохраняя порядок первого появления.
type accumulator struct {
	order []string
	byArt map[string]*bracketTotal
}

func newAccumulator() *accumulator {
	return &accumulator{byArt: make(map[string]*bracketTotal)}
}

func (a *accumulator) add(b storage.BracketVariant, qty int, total decimal.Decimal) {
	t, ok := a.byArt[b.Article]
	if !ok {
		t = &bracketTotal{bracket: b}
		a.byArt[b.Article] = t
		a.order = append(a.order, b.Article)
	}
	t.quantity += qty
	t.total = t.total.Add(total)
}

// items сумма строки берётся накопленная, а не цена * итоговое количество.
func (a *accumulator) items(discount float64) []LineItem {
	res := make([]LineItem, 0, len(a.order))
	for _, art := range a.order {
		t := a.byArt[art]
		res = append(res, LineItem{
			Article:             t.bracket.Article,
			Name:                t.bracket.DisplayName,
			Kind:                KindBracket,
			Quantity:            t.quantity,
			UnitPrice:           t.bracket.UnitPrice,
			DiscountPercent:     discount,
			DiscountedUnitPrice: discounted(t.bracket.UnitPrice, discount).InexactFloat64(),
			LineTotal:           t.total.Round(2).InexactFloat64(),
		})
	}
	return res
}

func checkLoad(v storage.RadiatorVariant, qty int, b storage.BracketVariant, bracketQty int) (Warning, bool) {
	if b.MaxLoadKg <= 0 || bracketQty <= 0 || v.WeightKg <= 0 {
		return Warning{}, false
	}

	load := decimal.NewFromFloat(v.WeightKg).
		Mul(decimal.NewFromInt(int64(qty))).
		Div(decimal.NewFromInt(int64(bracketQty))).
		Round(2).
		InexactFloat64()
	if load <= b.MaxLoadKg {
		return Warning{}, false
	}

	return Warning{
		RadiatorArticle:  v.Article,
		BracketArticle:   b.Article,
		LoadPerBracketKg: load,
		MaxLoadKg:        b.MaxLoadKg,
	}, true
}

func summarize(items []LineItem, weightDecimals int) Totals {
	var (
		t                     Totals
		sum, radSum, brSum    decimal.Decimal
		power, weight, volume float64
	)

	for _, it := range items {
		total := decimal.NewFromFloat(it.LineTotal)
		sum = sum.Add(total)

		switch it.Kind {
		case KindRadiator:
			t.RadiatorQuantity += it.Quantity
			radSum = radSum.Add(total)
			q := float64(it.Quantity)
			power += it.PowerW * q
			weight += it.WeightKg * q
			volume += it.VolumeM3 * q
		case KindBracket:
			t.BracketQuantity += it.Quantity
			brSum = brSum.Add(total)
		}
	}

	t.Positions = len(items)
	t.TotalQuantity = t.RadiatorQuantity + t.BracketQuantity
	t.Sum = sum.Round(2).InexactFloat64()
	t.RadiatorSum = radSum.Round(2).InexactFloat64()
	t.BracketSum = brSum.Round(2).InexactFloat64()
	if t.TotalQuantity > 0 {
		t.AveragePrice = sum.Div(decimal.NewFromInt(int64(t.TotalQuantity))).Round(2).InexactFloat64()
	}

	t.PowerW = power
	t.WeightKg = weight
	t.VolumeM3 = volume
	t.Power = FormatPower(power)
	t.Weight = FormatWeight(weight, weightDecimals)

	return t
}
