package models

import "time"

// OrderItem 订单项表（下单时快照商品信息）
type OrderItem struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID      uint      `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ProductID    uint      `gorm:"index;not null" json:"product_id"`                         // 商品ID
	ProductName  string    `gorm:"not null" json:"product_name"`                             // 商品名称快照
	ProductImage string    `gorm:"default:''" json:"product_image"`                          // 商品图片快照
	UnitAmount   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_amount"` // 成交单价
	Quantity     int       `gorm:"not null;default:1" json:"quantity"`                       // 数量
	TotalAmount  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 行小计
	CreatedAt    time.Time `json:"created_at"`                                               // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                               // 更新时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
