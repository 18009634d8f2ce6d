package constants

import (
	"strconv"
	"strings"
)

// Connection вид подключения радиатора.
type Connection string

const (
	ConnectionRightValve Connection = "right-valve"
	ConnectionLeftValve  Connection = "left-valve"
	ConnectionSide       Connection = "side"
)

// Connections в порядке отображения в форме
var Connections = []Connection{ConnectionRightValve, ConnectionLeftValve, ConnectionSide}

var connectionLabels = map[Connection]string{
	ConnectionRightValve: "VK-правое",
	ConnectionLeftValve:  "VK-левое",
	ConnectionSide:       "K-боковое",
}

// Label подпись подключения, она же префикс имени листа в матрице.
func (c Connection) Label() string {
	return connectionLabels[c]
}

// ParseConnection принимает как код ("right-valve"), так и подпись ("VK-правое").
func ParseConnection(s string) (Connection, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Connections {
		if s == string(c) || strings.EqualFold(s, c.Label()) {
			return c, true
		}
	}
	return "", false
}

var (
	allRadiatorTypes  = []string{"10", "11", "20", "21", "22", "30", "33"}
	leftValveRadTypes = []string{"10", "11", "30", "33"}
)

// RadiatorTypes типы радиаторов, доступные для подключения.
func RadiatorTypes(c Connection) []string {
	if c == ConnectionLeftValve {
		return leftValveRadTypes
	}
	if _, ok := connectionLabels[c]; !ok {
		return nil
	}
	return allRadiatorTypes
}

func TypeAllowed(c Connection, radiatorType string) bool {
	for _, t := range RadiatorTypes(c) {
		if t == radiatorType {
			return true
		}
	}
	return false
}

// Сетка размеров матрицы: 5 высот на 17 длин.
var (
	Heights = []int{300, 400, 500, 600, 900}
	Lengths = buildLengths(400, 2000, 100)
)

func buildLengths(from, to, step int) []int {
	var res []int
	for l := from; l <= to; l += step {
		res = append(res, l)
	}
	return res
}

func IsGridHeight(h int) bool {
	for _, v := range Heights {
		if v == h {
			return true
		}
	}
	return false
}

func IsGridLength(l int) bool {
	for _, v := range Lengths {
		if v == l {
			return true
		}
	}
	return false
}

// SheetName имя листа матрицы, например "VK-правое 10".
func SheetName(c Connection, radiatorType string) string {
	return c.Label() + " " + radiatorType
}

// ParseSheetName разбирает имя листа обратно в подключение и тип.
func ParseSheetName(name string) (Connection, string, bool) {
	name = strings.TrimSpace(name)
	idx := strings.LastIndex(name, " ")
	if idx <= 0 {
		return "", "", false
	}

	conn, ok := ParseConnection(name[:idx])
	if !ok {
		return "", "", false
	}

	radType := strings.TrimSpace(name[idx+1:])
	if _, err := strconv.Atoi(radType); err != nil {
		return "", "", false
	}

	return conn, radType, true
}

// MountingMode тип крепления.
type MountingMode string

const (
	MountingWall  MountingMode = "wall"
	MountingFloor MountingMode = "floor"
	MountingNone  MountingMode = "none"
)

var MountingModes = []MountingMode{MountingWall, MountingFloor, MountingNone}

var mountingLabels = map[MountingMode]string{
	MountingWall:  "Настенные кронштейны",
	MountingFloor: "Напольные кронштейны",
	MountingNone:  "Без кронштейнов",
}

func (m MountingMode) Label() string {
	return mountingLabels[m]
}

func ParseMountingMode(s string) (MountingMode, bool) {
	s = strings.TrimSpace(s)
	for _, m := range MountingModes {
		if s == string(m) || strings.EqualFold(s, m.Label()) {
			return m, true
		}
	}
	return "", false
}

// Колонки справочников
const (
	ColArticle  = "Артикул"
	ColName     = "Наименование"
	ColPower    = "Мощность, Вт"
	ColWeight   = "Вес, кг"
	ColVolume   = "Объем, м3"
	ColPrice    = "Цена, руб"
	ColMaxLoad  = "Макс. нагрузка, кг"
	BracketsTab = "Кронштейны"
)
