package models

import "time"

// Favorite 收藏表（user_id + product_id 唯一）
type Favorite struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                     // 主键
	UserID       uint      `gorm:"not null;uniqueIndex:idx_fav_user_product" json:"user_id"` // 用户ID
	ProductID    uint      `gorm:"not null;uniqueIndex:idx_fav_user_product" json:"product_id"` // 商品ID
	ProductName  string    `gorm:"not null" json:"product_name"`                             // 商品名称快照
	ProductImage string    `gorm:"default:''" json:"product_image"`                          // 商品图片快照
	CategoryName string    `gorm:"default:''" json:"category_name"`                          // 分类名称快照
	UnitAmount   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_amount"` // 收藏时单价快照
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                  // 创建时间

	// 关联
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品信息
}

// TableName 指定表名
func (Favorite) TableName() string {
	return "favorites"
}
