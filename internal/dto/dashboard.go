package dto

import "chainsaw-registry/pkg/types"

type DashboardStatsDTO struct {
	TotalEquipments int64                         `json:"total_equipments"`
	ThisMonth       int64                         `json:"this_month"`
	LastMonth       int64                         `json:"last_month"`
	GrowthRate      float64                       `json:"growth_rate"`
	Expired         int64                         `json:"expired"`
	ExpiringSoon    int64                         `json:"expiring_soon"`
	Active          int64                         `json:"active"`
	WithConsent     int64                         `json:"with_consent"`
	NewEquipments   int64                         `json:"new_equipments"`
	ByIntendedUse   []types.DashboardCountByGroup `json:"by_intended_use"`
	ByFuelType      []types.DashboardCountByGroup `json:"by_fuel_type"`
	MonthlyData     []types.DashboardChartData    `json:"monthly_data"`
	Recent          []EquipmentDTO                `json:"recent"`
}
