package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"chainsaw-registry/internal/entities"
	"chainsaw-registry/internal/repositories"

	"go.uber.org/zap"
)

const (
	listGenerationKey = "equipments:list:gen"
	itemKeyPrefix     = "equipments:item:"
)

// EquipmentCacheInterface holds listing pages and single records. Entries are
// raw entities so the derived validity is always computed at read time.
// Failures are logged and treated as misses.
//
// GetList returns the key it looked up alongside the result. A miss is filled
// by passing that key to SetList, so a page read before an invalidation is
// stored under the old generation and never served.
type EquipmentCacheInterface interface {
	GetList(ctx context.Context, filter entities.EquipmentFilter) (*CachedEquipmentList, string, bool)
	SetList(ctx context.Context, key string, list *CachedEquipmentList)
	GetOne(ctx context.Context, id string) (*entities.Equipment, bool)
	SetOne(ctx context.Context, e *entities.Equipment)
	InvalidateList(ctx context.Context)
	InvalidateOne(ctx context.Context, id string)
}

type CachedEquipmentList struct {
	Equipments []entities.Equipment `json:"equipments"`
	Total      uint64               `json:"total"`
}

// EquipmentCache keys listing pages by a generation counter. Invalidating the
// listing bumps the counter, so every previously cached page becomes
// unreachable and expires on its own TTL.
type EquipmentCache struct {
	cache  repositories.CacheRepositoryInterface
	ttl    time.Duration
	logger *zap.Logger
}

func NewEquipmentCache(cache repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) EquipmentCacheInterface {
	return &EquipmentCache{cache: cache, ttl: ttl, logger: logger}
}

func (c *EquipmentCache) generation(ctx context.Context) string {
	gen, err := c.cache.Get(ctx, listGenerationKey)
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			c.logger.Warn("failed to read listing generation", zap.Error(err))
		}
		return "0"
	}
	return gen
}

func (c *EquipmentCache) listKey(ctx context.Context, filter entities.EquipmentFilter) string {
	return fmt.Sprintf("equipments:list:%s:%s", c.generation(ctx), filterHash(filter))
}

// filterHash is stable under reordering of the multi-value filters.
func filterHash(f entities.EquipmentFilter) string {
	norm := func(in []string) []string {
		out := append([]string(nil), in...)
		sort.Strings(out)
		return out
	}
	f.Search = strings.ToLower(strings.TrimSpace(f.Search))
	f.FuelTypes = norm(f.FuelTypes)
	f.IntendedUses = norm(f.IntendedUses)
	f.Statuses = norm(f.Statuses)

	raw, _ := json.Marshal(f)
	sum := sha1.Sum(raw)
	return hex.EncodeToString(sum[:])
}

func (c *EquipmentCache) GetList(ctx context.Context, filter entities.EquipmentFilter) (*CachedEquipmentList, string, bool) {
	key := c.listKey(ctx, filter)
	var list CachedEquipmentList
	if !c.get(ctx, key, &list) {
		return nil, key, false
	}
	return &list, key, true
}

func (c *EquipmentCache) SetList(ctx context.Context, key string, list *CachedEquipmentList) {
	if key == "" {
		return
	}
	c.set(ctx, key, list)
}

func (c *EquipmentCache) GetOne(ctx context.Context, id string) (*entities.Equipment, bool) {
	var e entities.Equipment
	if !c.get(ctx, itemKeyPrefix+id, &e) {
		return nil, false
	}
	return &e, true
}

func (c *EquipmentCache) SetOne(ctx context.Context, e *entities.Equipment) {
	c.set(ctx, itemKeyPrefix+e.ID, e)
}

func (c *EquipmentCache) InvalidateList(ctx context.Context) {
	if _, err := c.cache.Incr(ctx, listGenerationKey); err != nil {
		c.logger.Error("failed to invalidate equipment listing", zap.Error(err))
	}
}

func (c *EquipmentCache) InvalidateOne(ctx context.Context, id string) {
	if err := c.cache.Del(ctx, itemKeyPrefix+id); err != nil {
		c.logger.Error("failed to invalidate equipment record", zap.String("id", id), zap.Error(err))
	}
}

func (c *EquipmentCache) get(ctx context.Context, key string, dst interface{}) bool {
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		c.logger.Warn("cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *EquipmentCache) set(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// noopEquipmentCache is used when no cache backend is configured.
type noopEquipmentCache struct{}

func NewNoopEquipmentCache() EquipmentCacheInterface { return noopEquipmentCache{} }

func (noopEquipmentCache) GetList(context.Context, entities.EquipmentFilter) (*CachedEquipmentList, string, bool) {
	return nil, "", false
}
func (noopEquipmentCache) SetList(context.Context, string, *CachedEquipmentList) {}
func (noopEquipmentCache) GetOne(context.Context, string) (*entities.Equipment, bool) { return nil, false }
func (noopEquipmentCache) SetOne(context.Context, *entities.Equipment) {}
func (noopEquipmentCache) InvalidateList(context.Context) {}
func (noopEquipmentCache) InvalidateOne(context.Context, string) {}
