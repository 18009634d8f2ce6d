// Package catalog держит справочник радиаторов и кронштейнов в памяти.
// Справочник загружается один раз и дальше только читается.
package catalog

import (
	"radiatool/internal/constants"
	"radiatool/internal/storage"
	"regexp"
	"strconv"
)

var dimensionsRe = regexp.MustCompile(`/(\d+)мм/(\d+)мм`)

// ParseDimensions достаёт высоту и длину из наименования вида "Радиатор METEOR тип 22/500мм/1000мм".
func ParseDimensions(name string) (height, length int, ok bool) {
	m := dimensionsRe.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}

	height, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	length, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}

	return height, length, true
}

type Key struct {
	Connection   constants.Connection
	RadiatorType string
}

type cell struct {
	height int
	length int
}

type sheet struct {
	variants  []storage.RadiatorVariant
	byArticle map[string]int
	grid      map[cell]int
}

type Catalog struct {
	sheets       map[Key]*sheet
	order        []Key
	brackets     map[string]storage.BracketVariant
	bracketOrder []string
}

// New собирает справочник. Листы с неизвестным подключением пропускаются,
// радиаторы без размеров в наименовании остаются доступны по артикулу, но не попадают в сетку.
func New(sheets []storage.Sheet, brackets []storage.BracketVariant) *Catalog {
	c := &Catalog{
		sheets:   make(map[Key]*sheet),
		brackets: make(map[string]storage.BracketVariant),
	}

	for _, sh := range sheets {
		if sh.Connection.Label() == "" || sh.RadiatorType == "" {
			continue
		}

		key := Key{Connection: sh.Connection, RadiatorType: sh.RadiatorType}
		s, ok := c.sheets[key]
		if !ok {
			s = &sheet{byArticle: make(map[string]int), grid: make(map[cell]int)}
			c.sheets[key] = s
			c.order = append(c.order, key)
		}

		for _, row := range sh.Rows {
			if row.Article == "" {
				continue
			}
			if _, dup := s.byArticle[row.Article]; dup {
				continue
			}

			v := storage.RadiatorVariant{
				Article:      row.Article,
				DisplayName:  row.DisplayName,
				Connection:   sh.Connection,
				RadiatorType: sh.RadiatorType,
				PowerW:       row.PowerW,
				WeightKg:     row.WeightKg,
				VolumeM3:     row.VolumeM3,
				UnitPrice:    row.UnitPrice,
			}
			if h, l, ok := ParseDimensions(row.DisplayName); ok {
				v.Height, v.Length = h, l
			}

			idx := len(s.variants)
			s.variants = append(s.variants, v)
			s.byArticle[v.Article] = idx

			// в ячейку попадает первый подходящий радиатор
			if constants.IsGridHeight(v.Height) && constants.IsGridLength(v.Length) {
				k := cell{height: v.Height, length: v.Length}
				if _, taken := s.grid[k]; !taken {
					s.grid[k] = idx
				}
			}
		}
	}

	for _, b := range brackets {
		if b.Article == "" {
			continue
		}
		if _, dup := c.brackets[b.Article]; dup {
			continue
		}
		c.brackets[b.Article] = b
		c.bracketOrder = append(c.bracketOrder, b.Article)
	}

	return c
}

// Variant ищет радиатор по листу и артикулу.
func (c *Catalog) Variant(conn constants.Connection, radiatorType, article string) (storage.RadiatorVariant, bool) {
	s, ok := c.sheets[Key{Connection: conn, RadiatorType: radiatorType}]
	if !ok {
		return storage.RadiatorVariant{}, false
	}
	idx, ok := s.byArticle[article]
	if !ok {
		return storage.RadiatorVariant{}, false
	}
	return s.variants[idx], true
}

// VariantAt радиатор в ячейке сетки.
func (c *Catalog) VariantAt(conn constants.Connection, radiatorType string, height, length int) (storage.RadiatorVariant, bool) {
	s, ok := c.sheets[Key{Connection: conn, RadiatorType: radiatorType}]
	if !ok {
		return storage.RadiatorVariant{}, false
	}
	idx, ok := s.grid[cell{height: height, length: length}]
	if !ok {
		return storage.RadiatorVariant{}, false
	}
	return s.variants[idx], true
}

// FindArticle ищет артикул по всем листам в порядке подключений и типов.
func (c *Catalog) FindArticle(article string) (storage.RadiatorVariant, bool) {
	for _, key := range c.sortedKeys() {
		if v, ok := c.Variant(key.Connection, key.RadiatorType, article); ok {
			return v, true
		}
	}
	return storage.RadiatorVariant{}, false
}

func (c *Catalog) Bracket(article string) (storage.BracketVariant, bool) {
	b, ok := c.brackets[article]
	return b, ok
}

func (c *Catalog) Brackets() []storage.BracketVariant {
	res := make([]storage.BracketVariant, 0, len(c.bracketOrder))
	for _, a := range c.bracketOrder {
		res = append(res, c.brackets[a])
	}
	return res
}

func (c *Catalog) HasSheet(conn constants.Connection, radiatorType string) bool {
	_, ok := c.sheets[Key{Connection: conn, RadiatorType: radiatorType}]
	return ok
}

// SheetNames имена загруженных листов в порядке загрузки.
func (c *Catalog) SheetNames() []string {
	res := make([]string, 0, len(c.order))
	for _, k := range c.order {
		res = append(res, constants.SheetName(k.Connection, k.RadiatorType))
	}
	return res
}

func (c *Catalog) VariantCount() int {
	n := 0
	for _, s := range c.sheets {
		n += len(s.variants)
	}
	return n
}

func (c *Catalog) BracketCount() int {
	return len(c.brackets)
}

// sortedKeys сначала известные сочетания в порядке формы, потом остальные листы.
func (c *Catalog) sortedKeys() []Key {
	keys := make([]Key, 0, len(c.order))
	seen := make(map[Key]bool, len(c.order))
	for _, conn := range constants.Connections {
		for _, t := range constants.RadiatorTypes(conn) {
			k := Key{Connection: conn, RadiatorType: t}
			if _, ok := c.sheets[k]; ok {
				keys = append(keys, k)
				seen[k] = true
			}
		}
	}
	for _, k := range c.order {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	return keys
}
