package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                         // 主键
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`                            // 分类ID
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`                             // 唯一标识
	Name            string         `gorm:"not null" json:"name"`                                         // 商品名称
	Description     string         `gorm:"type:text" json:"description"`                                 // 商品描述
	Fabric          string         `gorm:"default:''" json:"fabric"`                                     // 面料
	Occasion        string         `gorm:"default:''" json:"occasion"`                                   // 适用场合
	PriceAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`    // 售价
	OriginalAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"original_amount"` // 原价（0 表示无折扣）
	DiscountPercent int            `gorm:"not null;default:0" json:"discount_percent"`                   // 折扣百分比
	Stock           int            `gorm:"not null;default:0" json:"stock"`                              // 库存数量
	Images          StringArray    `gorm:"type:json" json:"images"`                                      // 图片数组
	Tags            StringArray    `gorm:"type:json" json:"tags"`                                        // 标签数组
	Status          string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status"` // 状态（active/inactive/out_of_stock）
	IsFeatured      bool           `gorm:"default:false;index" json:"is_featured"`                       // 是否精选
	IsNew           bool           `gorm:"default:false;index" json:"is_new"`                            // 是否新品
	IsSale          bool           `gorm:"default:false;index" json:"is_sale"`                           // 是否促销
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                            // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
