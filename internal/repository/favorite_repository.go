package repository

import (
	"github.com/vastrika/vastrika-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository 收藏数据访问接口
type FavoriteRepository interface {
	ListByUser(userID uint) ([]models.Favorite, error)
	Exists(userID, productID uint) (bool, error)
	Add(favorite *models.Favorite) error
	DeleteByUserAndProduct(userID, productID uint) (int64, error)
	ClearByUser(userID uint) error
	WithTx(tx *gorm.DB) *GormFavoriteRepository
}

// GormFavoriteRepository GORM 实现
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏仓库
func NewFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// WithTx 绑定事务
func (r *GormFavoriteRepository) WithTx(tx *gorm.DB) *GormFavoriteRepository {
	if tx == nil {
		return r
	}
	return &GormFavoriteRepository{db: tx}
}

// ListByUser 获取用户收藏（按收藏顺序）
func (r *GormFavoriteRepository) ListByUser(userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Order("id asc").Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// Exists 判断商品是否已收藏
func (r *GormFavoriteRepository) Exists(userID, productID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add 添加收藏；重复添加静默忽略，保持幂等
func (r *GormFavoriteRepository) Add(favorite *models.Favorite) error {
	if favorite == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(favorite).Error
}

// DeleteByUserAndProduct 取消收藏，返回受影响行数
func (r *GormFavoriteRepository) DeleteByUserAndProduct(userID, productID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Favorite{})
	return result.RowsAffected, result.Error
}

// ClearByUser 清空收藏
func (r *GormFavoriteRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Favorite{}).Error
}
