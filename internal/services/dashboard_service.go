package services

import (
	"context"
	"math"
	"time"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/entities"
	"chainsaw-registry/internal/repositories"
	"chainsaw-registry/pkg/types"

	"go.uber.org/zap"
)

const (
	dashboardMonths = 6
	recentLimit     = 5
	monthLabel      = "2006-01"
)

type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error)
}

type DashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
	now           func() time.Time
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		equipmentRepo: equipmentRepo,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *DashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	now := s.now()

	counters, err := s.dashboardRepo.GetCounters(ctx, now)
	if err != nil {
		return nil, err
	}
	byUse, err := s.dashboardRepo.GetCountByIntendedUse(ctx)
	if err != nil {
		s.logger.Error("GetStats: failed to group by intended use", zap.Error(err))
		return nil, err
	}
	byFuel, err := s.dashboardRepo.GetCountByFuelType(ctx)
	if err != nil {
		s.logger.Error("GetStats: failed to group by fuel type", zap.Error(err))
		return nil, err
	}

	firstMonth := repositories.MonthStart(now).AddDate(0, -(dashboardMonths - 1), 0)
	monthly, err := s.dashboardRepo.GetMonthlyRegistrations(ctx, firstMonth)
	if err != nil {
		s.logger.Error("GetStats: failed to load monthly registrations", zap.Error(err))
		return nil, err
	}

	recent, _, err := s.equipmentRepo.List(ctx, entities.EquipmentFilter{Page: 1, Limit: recentLimit})
	if err != nil {
		s.logger.Error("GetStats: failed to load recent equipments", zap.Error(err))
		return nil, err
	}

	for i := range byUse {
		byUse[i].Label = useTypeLabel(byUse[i].GroupName)
	}
	for i := range byFuel {
		byFuel[i].Label = byFuel[i].GroupName
	}

	return &dto.DashboardStatsDTO{
		TotalEquipments: counters.Total,
		ThisMonth:       counters.ThisMonth,
		LastMonth:       counters.LastMonth,
		GrowthRate:      growthRate(counters.ThisMonth, counters.LastMonth),
		Expired:         counters.Expired,
		ExpiringSoon:    counters.ExpiringSoon,
		Active:          counters.Total - counters.Expired - counters.ExpiringSoon,
		WithConsent:     counters.WithConsent,
		NewEquipments:   counters.NewEquipments,
		ByIntendedUse:   byUse,
		ByFuelType:      byFuel,
		MonthlyData:     fillMonths(monthly, firstMonth, dashboardMonths),
		Recent:          dto.NewEquipmentDTOs(recent, now),
	}, nil
}

// growthRate is the month-over-month change in percent, rounded to two
// decimals. With no registrations last month it is 100.
func growthRate(thisMonth, lastMonth int64) float64 {
	if lastMonth == 0 {
		return 100
	}
	rate := float64(thisMonth-lastMonth) / float64(lastMonth) * 100
	return math.Round(rate*100) / 100
}

// fillMonths returns exactly n consecutive months starting at from, with
// zero for months that had no registrations.
func fillMonths(data []types.DashboardChartData, from time.Time, n int) []types.DashboardChartData {
	counts := make(map[string]int64, len(data))
	for _, d := range data {
		counts[d.Label] = d.Value
	}
	out := make([]types.DashboardChartData, 0, n)
	for i := 0; i < n; i++ {
		label := from.AddDate(0, i, 0).Format(monthLabel)
		out = append(out, types.DashboardChartData{Label: label, Value: counts[label]})
	}
	return out
}

func useTypeLabel(code string) string {
	if label, ok := entities.UseTypeLabels[entities.NormalizeUseType(code)]; ok {
		return label
	}
	return code
}
