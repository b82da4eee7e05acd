package entities

type RelayType string

const (
	RelayWarehouse    RelayType = "WAREHOUSE"
	RelayShop         RelayType = "SHOP"
	RelayLocker       RelayType = "LOCKER"
	RelayPartnerStore RelayType = "PARTNER_STORE"
)

func (t RelayType) String() string {
	return string(t)
}

// AllRelayTypes - расширенный набор типов для запасного плана.
var AllRelayTypes = []RelayType{RelayWarehouse, RelayShop, RelayLocker, RelayPartnerStore}

// DefaultRelayTypes используются, когда клиент не указал предпочтения.
var DefaultRelayTypes = []RelayType{RelayWarehouse, RelayLocker}

// RelayPoint - склад, магазин или постамат для передачи груза между курьерами.
type RelayPoint struct {
	ID                string
	Name              string
	Type              RelayType
	Place             Place
	IsActive          bool
	AvailableCapacity int
}
