// Package brackets подбирает кронштейны к радиатору по типу, высоте и длине.
package brackets

import "radiatool/internal/constants"

// Need потребность в одном артикуле кронштейна.
type Need struct {
	Article  string `json:"article"`
	Quantity int    `json:"quantity"`
}

// Select возвращает кронштейны для qty радиаторов. Для MountingNone,
// неизвестного типа, высоты вне таблицы или длины вне диапазонов список пуст.
func Select(radiatorType string, length, height int, mode constants.MountingMode, qty int) []Need {
	if mode == constants.MountingNone || qty <= 0 {
		return nil
	}

	r, ok := rules[mode][radiatorType]
	if !ok {
		return nil
	}

	return r.apply(length, height, qty)
}

func (r rule) apply(length, height, qty int) []Need {
	articles := r.fixed
	if articles == nil {
		art, ok := r.byHeight[height]
		if !ok {
			return nil
		}
		articles = []string{art}
	}

	mult := r.multiplier(length)
	if mult == 0 {
		return nil
	}

	needs := make([]Need, 0, len(articles)+1)
	for _, art := range articles {
		needs = append(needs, Need{Article: art, Quantity: mult * qty})
	}

	if r.support != "" && r.supportBand.contains(length) {
		needs = append(needs, Need{Article: r.support, Quantity: r.supportBand.multiplier * qty})
	}

	return needs
}

func (r rule) multiplier(length int) int {
	if r.bands == nil {
		return r.always
	}
	for _, b := range r.bands {
		if b.contains(length) {
			return b.multiplier
		}
	}
	return 0
}
