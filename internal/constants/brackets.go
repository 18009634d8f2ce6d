package constants

// Артикулы кронштейнов.
const (
	// настенные для типов 10, 11
	WallPanelLeft    = "К9.2L"
	WallPanelRight   = "К9.2R"
	WallPanelSupport = "К9.3-40"

	// напольная средняя опора для длинных 10, 11
	FloorPanelSupport = "КНС.ОП"
)

var (
	// настенные для многорядных: по высоте
	WallByHeight = map[int]string{
		300: "К15.4300",
		400: "К15.4400",
		500: "К15.4500",
		600: "К15.4600",
		900: "К15.4900",
	}

	// напольные 10, 11
	FloorPanelByHeight = map[int]string{
		300: "КНС430",
		400: "КНС430",
		500: "КНС450",
		600: "КНС450",
		900: "КНС490",
	}

	// напольные 21
	Floor21ByHeight = map[int]string{
		300: "КНС2.430",
		400: "КНС2.430",
		500: "КНС2.450",
		600: "КНС2.450",
		900: "КНС2.490",
	}

	// напольные 20, 22, 30, 33
	FloorMultiByHeight = map[int]string{
		300: "КНС3.430",
		400: "КНС3.430",
		500: "КНС3.450",
		600: "КНС3.450",
		900: "КНС3.490",
	}
)
