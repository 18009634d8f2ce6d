package brackets

import "radiatool/internal/constants"

// band диапазон длин радиатора и множитель количества кронштейнов на один радиатор.
type band struct {
	min, max   int
	multiplier int
}

func (b band) contains(length int) bool {
	return length >= b.min && length <= b.max
}

type rule struct {
	// fixed артикулы, не зависящие от высоты
	fixed    []string
	byHeight map[int]string

	// bands == nil: множитель always при любой длине
	bands  []band
	always int

	support     string
	supportBand band
}

var longSupport = band{min: 1700, max: 2000, multiplier: 1}

var (
	wallPanel = rule{
		fixed:       []string{constants.WallPanelLeft, constants.WallPanelRight},
		always:      2,
		support:     constants.WallPanelSupport,
		supportBand: longSupport,
	}

	wallMulti = rule{
		byHeight: constants.WallByHeight,
		bands: []band{
			{min: 400, max: 1600, multiplier: 2},
			{min: 1700, max: 2000, multiplier: 3},
		},
	}

	floorPanel = rule{
		byHeight:    constants.FloorPanelByHeight,
		always:      2,
		support:     constants.FloorPanelSupport,
		supportBand: longSupport,
	}

	floorBands = []band{
		{min: 400, max: 1000, multiplier: 2},
		{min: 1100, max: 1600, multiplier: 3},
		{min: 1700, max: 2000, multiplier: 4},
	}

	floor21 = rule{
		byHeight: constants.Floor21ByHeight,
		bands:    floorBands,
	}

	floorMulti = rule{
		byHeight: constants.FloorMultiByHeight,
		bands:    floorBands,
	}
)

// rules тип крепления -> тип радиатора -> правило
var rules = map[constants.MountingMode]map[string]rule{
	constants.MountingWall: {
		"10": wallPanel,
		"11": wallPanel,
		"20": wallMulti,
		"21": wallMulti,
		"22": wallMulti,
		"30": wallMulti,
		"33": wallMulti,
	},
	constants.MountingFloor: {
		"10": floorPanel,
		"11": floorPanel,
		"21": floor21,
		"20": floorMulti,
		"22": floorMulti,
		"30": floorMulti,
		"33": floorMulti,
	},
}
