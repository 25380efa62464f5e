package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/vastrika/vastrika-api/internal/cache"
	"github.com/vastrika/vastrika-api/internal/config"
	"github.com/vastrika/vastrika-api/internal/constants"
	"github.com/vastrika/vastrika-api/internal/logger"
	"github.com/vastrika/vastrika-api/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultGuestStateTTL = 720 * time.Hour

// GuestCartItem 游客购物车条目，单价为加入时的快照
type GuestCartItem struct {
	ProductID uint         `json:"product_id"`
	Quantity  int          `json:"quantity"`
	UnitPrice models.Money `json:"unit_price"`
	AddedAt   int64        `json:"added_at"`
	Name      string       `json:"name,omitempty"`
	Image     string       `json:"image,omitempty"`
}

// GuestCartSummary 游客购物车汇总
type GuestCartSummary struct {
	Items     []GuestCartItem `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  models.Money    `json:"subtotal"`
}

// SummarizeGuestCart 汇总游客购物车数量与小计
func SummarizeGuestCart(items []GuestCartItem) GuestCartSummary {
	summary := GuestCartSummary{Items: items}
	subtotal := decimal.Zero
	for _, item := range items {
		summary.ItemCount += item.Quantity
		subtotal = subtotal.Add(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	summary.Subtotal = models.NewMoneyFromDecimal(subtotal)
	return summary
}

// GuestStateStore 游客状态存储接口
type GuestStateStore interface {
	Get(ctx context.Context, token, scope string) ([]byte, bool, error)
	Set(ctx context.Context, token, scope string, payload []byte, ttl time.Duration) error
	Del(ctx context.Context, token, scope string) error
}

// RedisGuestStateStore 基于 Redis 的游客状态存储
type RedisGuestStateStore struct{}

// NewRedisGuestStateStore 创建 Redis 游客状态存储
func NewRedisGuestStateStore() *RedisGuestStateStore {
	return &RedisGuestStateStore{}
}

func guestStateKey(token, scope string) string {
	return fmt.Sprintf("guest:%s:%s", scope, token)
}

// Get 读取游客状态
func (s *RedisGuestStateStore) Get(ctx context.Context, token, scope string) ([]byte, bool, error) {
	var raw json.RawMessage
	hit, err := cache.GetJSON(ctx, guestStateKey(token, scope), &raw)
	if err != nil || !hit {
		return nil, hit, err
	}
	return raw, true, nil
}

// Set 写入游客状态
func (s *RedisGuestStateStore) Set(ctx context.Context, token, scope string, payload []byte, ttl time.Duration) error {
	return cache.SetJSON(ctx, guestStateKey(token, scope), json.RawMessage(payload), ttl)
}

// Del 删除游客状态
func (s *RedisGuestStateStore) Del(ctx context.Context, token, scope string) error {
	return cache.Del(ctx, guestStateKey(token, scope))
}

// MemoryGuestStateStore 内存实现，测试与无 Redis 环境使用
type MemoryGuestStateStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryGuestStateStore 创建内存游客状态存储
func NewMemoryGuestStateStore() *MemoryGuestStateStore {
	return &MemoryGuestStateStore{entries: make(map[string][]byte)}
}

// Get 读取游客状态
func (s *MemoryGuestStateStore) Get(ctx context.Context, token, scope string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.entries[guestStateKey(token, scope)]
	if !ok {
		return nil, false, nil
	}
	copied := make([]byte, len(payload))
	copy(copied, payload)
	return copied, true, nil
}

// Set 写入游客状态
func (s *MemoryGuestStateStore) Set(ctx context.Context, token, scope string, payload []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]byte, len(payload))
	copy(copied, payload)
	s.entries[guestStateKey(token, scope)] = copied
	return nil
}

// Del 删除游客状态
func (s *MemoryGuestStateStore) Del(ctx context.Context, token, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, guestStateKey(token, scope))
	return nil
}

// GuestStateService 游客状态服务
// 同一 token 的读改写通过按 token 分段的互斥锁串行化
type GuestStateService struct {
	store GuestStateStore
	ttl   time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGuestStateService 创建游客状态服务
func NewGuestStateService(cfg *config.Config, store GuestStateStore) *GuestStateService {
	ttl := defaultGuestStateTTL
	if cfg != nil && cfg.Guest.StateTTLHours > 0 {
		ttl = time.Duration(cfg.Guest.StateTTLHours) * time.Hour
	}
	return &GuestStateService{
		store: store,
		ttl:   ttl,
		locks: make(map[string]*sync.Mutex),
	}
}

// NewGuestToken 生成新的游客 token
func (s *GuestStateService) NewGuestToken() string {
	return uuid.NewString()
}

// ValidateToken 校验游客 token 格式
func (s *GuestStateService) ValidateToken(token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return ErrGuestTokenInvalid
	}
	return nil
}

func (s *GuestStateService) tokenLock(token string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[token]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[token] = lock
	}
	return lock
}

func (s *GuestStateService) loadCart(ctx context.Context, token string) ([]GuestCartItem, error) {
	payload, hit, err := s.store.Get(ctx, token, constants.GuestScopeCart)
	if err != nil {
		return nil, err
	}
	if !hit {
		return []GuestCartItem{}, nil
	}
	var items []GuestCartItem
	if err := json.Unmarshal(payload, &items); err != nil {
		// 损坏的快照按空状态处理，避免游客完全不可用
		logger.Warnw("guest_cart_payload_corrupt", "token", token, "error", err)
		return []GuestCartItem{}, nil
	}
	return items, nil
}

func (s *GuestStateService) saveCart(ctx context.Context, token string, items []GuestCartItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, token, constants.GuestScopeCart, payload, s.ttl)
}

// GetCart 获取游客购物车
func (s *GuestStateService) GetCart(ctx context.Context, token string) ([]GuestCartItem, error) {
	if err := s.ValidateToken(token); err != nil {
		return nil, err
	}
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()
	return s.loadCart(ctx, token)
}

// AddCartItem 添加游客购物车项；同一商品合并并累加数量
func (s *GuestStateService) AddCartItem(ctx context.Context, token string, item GuestCartItem) ([]GuestCartItem, error) {
	if err := s.ValidateToken(token); err != nil {
		return nil, err
	}
	if item.ProductID == 0 || item.Quantity <= 0 {
		return nil, ErrInvalidInput
	}
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()

	items, err := s.loadCart(ctx, token)
	if err != nil {
		return nil, err
	}
	merged := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		item.AddedAt = time.Now().Unix()
		items = append(items, item)
	}
	if err := s.saveCart(ctx, token, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateCartQuantity 覆盖游客购物车项数量；数量归零视为移除
func (s *GuestStateService) UpdateCartQuantity(ctx context.Context, token string, productID uint, quantity int) ([]GuestCartItem, error) {
	if err := s.ValidateToken(token); err != nil {
		return nil, err
	}
	if productID == 0 {
		return nil, ErrInvalidInput
	}
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()

	items, err := s.loadCart(ctx, token)
	if err != nil {
		return nil, err
	}
	next := items[:0]
	found := false
	for _, existing := range items {
		if existing.ProductID == productID {
			found = true
			if quantity <= 0 {
				continue
			}
			existing.Quantity = quantity
		}
		next = append(next, existing)
	}
	if !found {
		return nil, ErrCartItemNotFound
	}
	if err := s.saveCart(ctx, token, next); err != nil {
		return nil, err
	}
	return next, nil
}

// RemoveCartItem 删除游客购物车项
func (s *GuestStateService) RemoveCartItem(ctx context.Context, token string, productID uint) ([]GuestCartItem, error) {
	return s.UpdateCartQuantity(ctx, token, productID, 0)
}

// ClearCart 清空游客购物车
func (s *GuestStateService) ClearCart(ctx context.Context, token string) error {
	if err := s.ValidateToken(token); err != nil {
		return err
	}
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()
	return s.store.Del(ctx, token, constants.GuestScopeCart)
}

func (s *GuestStateService) loadFavorites(ctx context.Context, token string) ([]uint, error) {
	payload, hit, err := s.store.Get(ctx, token, constants.GuestScopeFavorites)
	if err != nil {
		return nil, err
	}
	if !hit {
		return []uint{}, nil
	}
	var ids []uint
	if err := json.Unmarshal(payload, &ids); err != nil {
		logger.Warnw("guest_favorites_payload_corrupt", "token", token, "error", err)
		return []uint{}, nil
	}
	return ids, nil
}

func (s *GuestStateService) saveFavorites(ctx context.Context, token string, ids []uint) error {
	payload, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, token, constants.GuestScopeFavorites, payload, s.ttl)
}

// GetFavorites 获取游客收藏
func (s *GuestStateService) GetFavorites(ctx context.Context, token string) ([]uint, error) {
	if err := s.ValidateToken(token); err != nil {
		return nil, err
	}
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()
	return s.loadFavorites(ctx, token)
}

// ToggleFavorite 切换游客收藏状态，返回切换后是否已收藏
func (s *GuestStateService) ToggleFavorite(ctx context.Context, token string, productID uint) (bool, error) {
	if err := s.ValidateToken(token); err != nil {
		return false, err
	}
	if productID == 0 {
		return false, ErrInvalidInput
	}
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()

	ids, err := s.loadFavorites(ctx, token)
	if err != nil {
		return false, err
	}
	next := ids[:0]
	removed := false
	for _, id := range ids {
		if id == productID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, productID)
	}
	if err := s.saveFavorites(ctx, token, next); err != nil {
		return false, err
	}
	return !removed, nil
}

// Clear 清除游客全部状态（合并到账号后调用）
func (s *GuestStateService) Clear(ctx context.Context, token string) error {
	if err := s.ValidateToken(token); err != nil {
		return err
	}
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()
	if err := s.store.Del(ctx, token, constants.GuestScopeCart); err != nil {
		return err
	}
	return s.store.Del(ctx, token, constants.GuestScopeFavorites)
}
