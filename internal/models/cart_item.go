package models

import "time"

// CartItem 购物车条目表（user_id + product_id 唯一）
type CartItem struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                      // 主键
	UserID       uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"` // 用户ID
	ProductID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"` // 商品ID
	Quantity     int       `gorm:"not null;default:1" json:"quantity"`                        // 数量
	UnitAmount   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_amount"`  // 加入时单价快照
	ProductName  string    `gorm:"not null" json:"product_name"`                              // 商品名称快照
	ProductImage string    `gorm:"default:''" json:"product_image"`                           // 商品图片快照
	CreatedAt    time.Time `json:"created_at"`                                                // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                                // 更新时间

	// 关联
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品信息
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
