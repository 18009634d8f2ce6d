package excel

import (
	"fmt"
	"github.com/xuri/excelize/v2"
	"math"
	"radiatool/internal/constants"
)

var radiatorHeader = []string{
	constants.ColArticle, constants.ColName, constants.ColPower,
	constants.ColWeight, constants.ColVolume, constants.ColPrice,
}

type sampleBracket struct {
	Article string
	Name    string
	Price   float64
	MaxLoad float64
}

// SampleBrackets кронштейны тестового справочника. Артикулы берутся из таблиц
// подбора, поэтому каждый подобранный кронштейн есть в справочнике.
var SampleBrackets = sampleBrackets()

func sampleBrackets() []sampleBracket {
	list := []sampleBracket{
		{constants.WallPanelLeft, "Кронштейн настенный для панельных радиаторов левый", 180, 0},
		{constants.WallPanelRight, "Кронштейн настенный для панельных радиаторов правый", 180, 0},
		{constants.WallPanelSupport, "Опора промежуточная настенная", 150, 0},
	}

	for i, h := range constants.Heights {
		list = append(list, sampleBracket{
			Article: constants.WallByHeight[h],
			Name:    fmt.Sprintf("Кронштейн настенный К15.4 для высоты %dмм", h),
			Price:   float64(220 + 10*i),
			MaxLoad: 40,
		})
	}

	list = append(list, sampleBracket{constants.FloorPanelSupport, "Опора промежуточная напольная", 210, 0})
	list = append(list, floorFamily(constants.FloorPanelByHeight, "Кронштейн напольный", 320)...)
	list = append(list, floorFamily(constants.Floor21ByHeight, "Кронштейн напольный тип 21", 360)...)
	list = append(list, floorFamily(constants.FloorMultiByHeight, "Кронштейн напольный многорядный", 400)...)

	return list
}

// floorFamily одна строка на артикул, в названии диапазон высот, которым он подходит.
func floorFamily(byHeight map[int]string, name string, price float64) []sampleBracket {
	var (
		list    []sampleBracket
		heights = make(map[string][]int)
	)

	for _, h := range constants.Heights {
		art := byHeight[h]
		if _, ok := heights[art]; !ok {
			list = append(list, sampleBracket{Article: art})
		}
		heights[art] = append(heights[art], h)
	}

	for i := range list {
		hs := heights[list[i].Article]
		band := fmt.Sprintf("%d", hs[0])
		if len(hs) > 1 {
			band = fmt.Sprintf("%d-%d", hs[0], hs[len(hs)-1])
		}
		list[i].Name = fmt.Sprintf("%s для высоты %sмм", name, band)
		list[i].Price = price + float64(20*i)
	}

	return list
}

// WriteSampleMatrix создаёт матрицу со всеми сочетаниями подключения и типа,
// значения считаются от размеров.
func WriteSampleMatrix(path string) error {
	const op = "storage.excel.WriteSampleMatrix"

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, conn := range constants.Connections {
		for _, radType := range constants.RadiatorTypes(conn) {
			sheet := constants.SheetName(conn, radType)
			if first {
				if err := f.SetSheetName("Sheet1", sheet); err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
				first = false
			} else if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}

			if err := f.SetSheetRow(sheet, "A1", &radiatorHeader); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}

			row := 2
			for _, h := range constants.Heights {
				for _, l := range constants.Lengths {
					values := []interface{}{
						fmt.Sprintf("R%s%d%d", radType, h, l),
						fmt.Sprintf("Радиатор METEOR тип %s/%dмм/%dмм", radType, h, l),
						round(float64(l)*0.5+float64(h)*0.3, 1),
						round(float64(l)*0.01+float64(h)*0.005, 2),
						round(float64(l*h)*0.000001, 4),
						float64(l*2 + h),
					}

					cell, _ := excelize.CoordinatesToCellName(1, row)
					if err := f.SetSheetRow(sheet, cell, &values); err != nil {
						return fmt.Errorf("%s: %w", op, err)
					}
					row++
				}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func WriteSampleBrackets(path string) error {
	const op = "storage.excel.WriteSampleBrackets"

	f := excelize.NewFile()
	defer f.Close()

	sheet := constants.BracketsTab
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	header := []string{constants.ColArticle, constants.ColName, constants.ColPrice, constants.ColMaxLoad}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for i, b := range SampleBrackets {
		values := []interface{}{b.Article, b.Name, b.Price}
		if b.MaxLoad > 0 {
			values = append(values, b.MaxLoad)
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
