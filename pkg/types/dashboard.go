package types

type DashboardCountByGroup struct {
	GroupName string `json:"group_name" db:"group_name"`
	Label     string `json:"label" db:"-"`
	Count     int64  `json:"count" db:"count"`
}

type DashboardChartData struct {
	Label string `json:"label" db:"label"`
	Value int64  `json:"value" db:"value"`
}

// DashboardCounters are the scalar counts of the registry dashboard.
type DashboardCounters struct {
	Total         int64 `json:"total_equipments"`
	ThisMonth     int64 `json:"this_month"`
	LastMonth     int64 `json:"last_month"`
	Expired       int64 `json:"expired"`
	ExpiringSoon  int64 `json:"expiring_soon"`
	WithConsent   int64 `json:"with_consent"`
	NewEquipments int64 `json:"new_equipments"`
}
