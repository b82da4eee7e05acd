package entities

// Coordinate задается в градусах WGS84.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

type Place struct {
	Coordinate Coordinate
	Address    string
}
