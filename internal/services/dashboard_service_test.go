package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"chainsaw-registry/internal/entities"
	"chainsaw-registry/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGrowthRate(t *testing.T) {
	assert.Equal(t, 100.0, growthRate(5, 0))
	assert.Equal(t, 100.0, growthRate(0, 0))
	assert.Equal(t, 50.0, growthRate(3, 2))
	assert.Equal(t, -66.67, growthRate(1, 3))
}

func TestFillMonths(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := fillMonths([]types.DashboardChartData{{Label: "2024-03", Value: 7}}, from, 6)

	require.Len(t, out, 6)
	assert.Equal(t, "2024-01", out[0].Label)
	assert.Equal(t, int64(7), out[2].Value)
	assert.Equal(t, "2024-06", out[5].Label)
	assert.Zero(t, out[5].Value)
}

func TestDashboardService_GetStats(t *testing.T) {
	dashRepo := new(MockDashboardRepository)
	equipRepo := new(MockEquipmentRepository)
	svc := NewDashboardService(dashRepo, equipRepo, zap.NewNop()).(*DashboardService)
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	dashRepo.On("GetCounters", mock.Anything, now).Return(&types.DashboardCounters{
		Total: 20, ThisMonth: 6, LastMonth: 4, Expired: 5, ExpiringSoon: 3, WithConsent: 12, NewEquipments: 9,
	}, nil)
	dashRepo.On("GetCountByIntendedUse", mock.Anything).Return([]types.DashboardCountByGroup{
		{GroupName: "WOOD_PROCESSING", Count: 11},
		{GroupName: "TREE_CUTTING", Count: 2},
	}, nil)
	dashRepo.On("GetCountByFuelType", mock.Anything).Return([]types.DashboardCountByGroup{{GroupName: "GAS", Count: 20}}, nil)
	dashRepo.On("GetMonthlyRegistrations", mock.Anything, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
		Return([]types.DashboardChartData{{Label: "2024-06", Value: 6}}, nil)
	equipRepo.On("List", mock.Anything, entities.EquipmentFilter{Page: 1, Limit: 5}).
		Return([]entities.Equipment{*storedEquipment(testID, "MS 250")}, uint64(20), nil)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 20, stats.TotalEquipments)
	assert.EqualValues(t, 12, stats.Active)
	assert.Equal(t, 50.0, stats.GrowthRate)
	assert.Equal(t, "Wood Processing", stats.ByIntendedUse[0].Label)
	assert.Equal(t, "Private Plantation Cutting", stats.ByIntendedUse[1].Label)
	assert.Equal(t, "GAS", stats.ByFuelType[0].Label)
	require.Len(t, stats.MonthlyData, 6)
	assert.EqualValues(t, 6, stats.MonthlyData[5].Value)
	require.Len(t, stats.Recent, 1)
	assert.Equal(t, "EXPIRED", string(stats.Recent[0].Status))
}

func TestDashboardService_GetStats_Error(t *testing.T) {
	dashRepo := new(MockDashboardRepository)
	svc := NewDashboardService(dashRepo, new(MockEquipmentRepository), zap.NewNop())

	dashRepo.On("GetCounters", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := svc.GetStats(context.Background())
	assert.Error(t, err)
}
