package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/entities"
	"chainsaw-registry/internal/repositories"
	"chainsaw-registry/pkg/types"

	"github.com/stretchr/testify/mock"
)

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) FindByID(ctx context.Context, id string) (*entities.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) Update(ctx context.Context, id string, patch dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) Delete(ctx context.Context, id string) (*entities.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) List(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, uint64, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]entities.Equipment)
	return list, args.Get(1).(uint64), args.Error(2)
}

func (m *MockEquipmentRepository) ListByIDs(ctx context.Context, ids []string) ([]entities.Equipment, error) {
	args := m.Called(ctx, ids)
	list, _ := args.Get(0).([]entities.Equipment)
	return list, args.Error(1)
}

func (m *MockEquipmentRepository) ListAll(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]entities.Equipment)
	return list, args.Error(1)
}

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) GetCounters(ctx context.Context, now time.Time) (*types.DashboardCounters, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DashboardCounters), args.Error(1)
}

func (m *MockDashboardRepository) GetCountByIntendedUse(ctx context.Context) ([]types.DashboardCountByGroup, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]types.DashboardCountByGroup)
	return list, args.Error(1)
}

func (m *MockDashboardRepository) GetCountByFuelType(ctx context.Context) ([]types.DashboardCountByGroup, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]types.DashboardCountByGroup)
	return list, args.Error(1)
}

func (m *MockDashboardRepository) GetMonthlyRegistrations(ctx context.Context, from time.Time) ([]types.DashboardChartData, error) {
	args := m.Called(ctx, from)
	list, _ := args.Get(0).([]types.DashboardChartData)
	return list, args.Error(1)
}

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func (m *MockAdminRepository) FindByID(ctx context.Context, id string) (*entities.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *entities.Admin) (*entities.Admin, error) {
	args := m.Called(ctx, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

// memoryCache is an in-process CacheRepositoryInterface without expiry.
type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	default:
		c.data[key] = ""
	}
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.data[key], 10, 64)
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

// spyCache records invalidations.
type spyCache struct {
	listInvalidations int
	itemInvalidations []string
}

func (s *spyCache) GetList(context.Context, entities.EquipmentFilter) (*CachedEquipmentList, string, bool) {
	return nil, "", false
}
func (s *spyCache) SetList(context.Context, string, *CachedEquipmentList) {}
func (s *spyCache) GetOne(context.Context, string) (*entities.Equipment, bool) { return nil, false }
func (s *spyCache) SetOne(context.Context, *entities.Equipment) {}
func (s *spyCache) InvalidateList(context.Context) { s.listInvalidations++ }
func (s *spyCache) InvalidateOne(_ context.Context, id string) {
	s.itemInvalidations = append(s.itemInvalidations, id)
}
