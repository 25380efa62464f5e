package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vastrika/vastrika-api/internal/constants"
	"github.com/vastrika/vastrika-api/internal/models"
	"github.com/vastrika/vastrika-api/internal/repository"

	"github.com/shopspring/decimal"
)

// SettingService 设置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// DeliveryConfig 配送配置
type DeliveryConfig struct {
	FreeDeliveryMin decimal.Decimal
	DeliveryFee     decimal.Decimal
}

// GetStoreConfig 获取门店配置（合并默认值）
func (s *SettingService) GetStoreConfig(defaults map[string]interface{}) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	for k, v := range defaults {
		data[k] = v
	}

	setting, err := s.repo.GetByKey(constants.SettingKeyStoreConfig)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return data, nil
	}

	for k, v := range setting.ValueJSON {
		data[k] = v
	}
	return data, nil
}

// GetByKey 获取设置
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	if !isKnownSettingKey(key) {
		return nil, ErrSettingKeyUnknown
	}
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 设置值
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	if !isKnownSettingKey(key) {
		return nil, ErrSettingKeyUnknown
	}
	setting, err := s.repo.Upsert(key, models.JSON(value))
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

// GetDeliveryConfig 获取配送配置；未配置时使用默认值
func (s *SettingService) GetDeliveryConfig() (DeliveryConfig, error) {
	cfg := DeliveryConfig{
		FreeDeliveryMin: decimal.NewFromInt(999),
		DeliveryFee:     decimal.NewFromInt(99),
	}
	if s == nil {
		return cfg, nil
	}
	value, err := s.GetByKey(constants.SettingKeyDeliveryConfig)
	if err != nil {
		return cfg, err
	}
	if value == nil {
		return cfg, nil
	}
	if raw, ok := value[constants.SettingFieldFreeDeliveryMin]; ok {
		if parsed, err := parseSettingDecimal(raw); err == nil && parsed.GreaterThanOrEqual(decimal.Zero) {
			cfg.FreeDeliveryMin = parsed
		}
	}
	if raw, ok := value[constants.SettingFieldDeliveryFee]; ok {
		if parsed, err := parseSettingDecimal(raw); err == nil && parsed.GreaterThanOrEqual(decimal.Zero) {
			cfg.DeliveryFee = parsed
		}
	}
	return cfg, nil
}

// GetNewArrivalWindowDays 获取新品窗口天数配置
func (s *SettingService) GetNewArrivalWindowDays(defaultValue int) (int, error) {
	if s == nil {
		return defaultValue, nil
	}
	value, err := s.GetByKey(constants.SettingKeyNewArrivals)
	if err != nil {
		return defaultValue, err
	}
	if value == nil {
		return defaultValue, nil
	}
	raw, ok := value[constants.SettingFieldNewArrivalWindow]
	if !ok {
		return defaultValue, nil
	}
	days, err := parseSettingInt(raw)
	if err != nil {
		return defaultValue, err
	}
	if days <= 0 {
		return defaultValue, nil
	}
	return days, nil
}

func isKnownSettingKey(key string) bool {
	switch strings.TrimSpace(key) {
	case constants.SettingKeyStoreConfig, constants.SettingKeyDeliveryConfig, constants.SettingKeyNewArrivals:
		return true
	default:
		return false
	}
}

func parseSettingInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), nil
		}
		if f, err := v.Float64(); err == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("invalid json number")
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported value type")
	}
}

func parseSettingDecimal(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return decimal.Zero, fmt.Errorf("empty string")
		}
		return decimal.NewFromString(trimmed)
	default:
		return decimal.Zero, fmt.Errorf("unsupported value type")
	}
}
