package repository

import (
	"errors"

	"github.com/vastrika/vastrika-api/internal/models"

	"gorm.io/gorm"
)

// SecurityQuestionRepository 密保问题数据访问接口
type SecurityQuestionRepository interface {
	GetByUserID(userID uint) (*models.SecurityQuestion, error)
	Create(question *models.SecurityQuestion) error
	Update(question *models.SecurityQuestion) error
	WithTx(tx *gorm.DB) *GormSecurityQuestionRepository
}

// GormSecurityQuestionRepository GORM 实现
type GormSecurityQuestionRepository struct {
	db *gorm.DB
}

// NewSecurityQuestionRepository 创建密保问题仓库
func NewSecurityQuestionRepository(db *gorm.DB) *GormSecurityQuestionRepository {
	return &GormSecurityQuestionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSecurityQuestionRepository) WithTx(tx *gorm.DB) *GormSecurityQuestionRepository {
	if tx == nil {
		return r
	}
	return &GormSecurityQuestionRepository{db: tx}
}

// GetByUserID 获取用户的密保问题
func (r *GormSecurityQuestionRepository) GetByUserID(userID uint) (*models.SecurityQuestion, error) {
	var question models.SecurityQuestion
	if err := r.db.Where("user_id = ?", userID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

// Create 创建密保问题
func (r *GormSecurityQuestionRepository) Create(question *models.SecurityQuestion) error {
	return r.db.Create(question).Error
}

// Update 更新密保问题
func (r *GormSecurityQuestionRepository) Update(question *models.SecurityQuestion) error {
	return r.db.Save(question).Error
}
