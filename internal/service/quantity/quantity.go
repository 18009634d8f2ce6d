// Package quantity разбирает количество из ячейки матрицы.
package quantity

import (
	"math"
	"strconv"
	"strings"
)

// Max наибольшее допустимое количество в ячейке.
const Max = math.MaxInt32

// Parse превращает ввод вида "2+3" в количество.
// Пустая строка, лишние плюсы по краям и пустые слагаемые дают ноль вклада,
// а любое нечисловое или отрицательное слагаемое обнуляет весь результат.
// Результат больше Max тоже даёт ноль.
func Parse(raw string) int {
	value := strings.TrimSpace(raw)
	value = strings.Trim(value, "+")
	if value == "" {
		return 0
	}

	total := 0
	for _, part := range strings.Split(value, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		f, err := strconv.ParseFloat(part, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > Max {
			return 0
		}

		// как round в исходном инструменте: половина к чётному
		sum, ok := Add(total, int(math.RoundToEven(f)))
		if !ok {
			return 0
		}
		total = sum
	}

	return total
}

// Add складывает количества; ok == false, если сумма выходит за [0, Max].
func Add(a, b int) (int, bool) {
	if a < 0 || b < 0 || a > Max || b > Max-a {
		return 0, false
	}
	return a + b, true
}

// ValidInput проверка ввода в ячейку: только цифры и "+". Пустая строка очищает ячейку.
func ValidInput(raw string) bool {
	for _, r := range raw {
		if (r < '0' || r > '9') && r != '+' {
			return false
		}
	}
	return true
}
