package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`                         // 订单编号
	UserID         uint           `gorm:"index;not null" json:"user_id"`                                // 用户ID
	Status         string         `gorm:"index;not null" json:"status"`                                 // 订单状态
	SubtotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal_amount"` // 商品小计
	DeliveryAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_amount"` // 配送费
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 应付总额
	ReceiverName   string         `gorm:"not null" json:"receiver_name"`                                // 收货人姓名
	ReceiverPhone  string         `gorm:"not null" json:"receiver_phone"`                               // 收货人电话
	Address        string         `gorm:"type:text;not null" json:"address"`                            // 收货地址
	Remark         string         `gorm:"type:text" json:"remark"`                                      // 订单备注
	ClientIP       string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                  // 下单客户端IP
	ConfirmedAt    *time.Time     `json:"confirmed_at"`                                                 // 确认时间
	ShippedAt      *time.Time     `json:"shipped_at"`                                                   // 发货时间
	DeliveredAt    *time.Time     `json:"delivered_at"`                                                 // 送达时间
	CanceledAt     *time.Time     `json:"canceled_at"`                                                  // 取消时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
	User  User        `gorm:"foreignKey:UserID" json:"user,omitempty"`   // 下单用户
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
