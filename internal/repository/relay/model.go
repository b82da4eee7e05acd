package relay

type RelayPointDB struct {
	ID                string
	Name              string
	Type              string
	Lat               float64
	Lng               float64
	Address           string
	IsActive          bool
	AvailableCapacity int
}
