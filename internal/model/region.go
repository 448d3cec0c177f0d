package model

// Region identifies the area a run analyses.
type Region string

// Supported regions. Global is a pseudo-region that disables continent filtering.
const (
	Europe       Region = "Europe"
	Asia         Region = "Asia"
	Africa       Region = "Africa"
	NorthAmerica Region = "North America"
	SouthAmerica Region = "South America"
	Oceania      Region = "Oceania"
	Global       Region = "Global"
)

// BBox is a geographic bounding box in degrees.
type BBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// Contains reports whether the point lies inside the box, edges included.
func (b BBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

var regionBoxes = map[Region]BBox{
	Europe:       {MinLon: -25, MinLat: 34, MaxLon: 45, MaxLat: 72},
	Asia:         {MinLon: 25, MinLat: -11, MaxLon: 180, MaxLat: 82},
	Africa:       {MinLon: -20, MinLat: -35, MaxLon: 55, MaxLat: 38},
	NorthAmerica: {MinLon: -170, MinLat: 5, MaxLon: -50, MaxLat: 84},
	SouthAmerica: {MinLon: -82, MinLat: -56, MaxLon: -34, MaxLat: 13},
	Oceania:      {MinLon: 110, MinLat: -48, MaxLon: 180, MaxLat: 0},
	Global:       {MinLon: -180, MinLat: -60, MaxLon: 180, MaxLat: 84},
}

// Regions lists the selectable regions in menu order.
func Regions() []Region {
	return []Region{Europe, Asia, Africa, NorthAmerica, SouthAmerica, Oceania, Global}
}

// Box returns the region's bounding box.
func (r Region) Box() (BBox, bool) {
	b, ok := regionBoxes[r]
	return b, ok
}

// Valid reports whether r is a known region.
func (r Region) Valid() bool {
	_, ok := regionBoxes[r]
	return ok
}
