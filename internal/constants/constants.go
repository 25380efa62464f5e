package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 商品状态常量
const (
	ProductStatusActive     = "active"
	ProductStatusInactive   = "inactive"
	ProductStatusOutOfStock = "out_of_stock"
)

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// 设置键常量
const (
	SettingKeyStoreConfig    = "store_config"
	SettingKeyDeliveryConfig = "delivery_config"
	SettingKeyNewArrivals    = "new_arrivals"
)

// 设置字段常量
const (
	SettingFieldFreeDeliveryMin   = "free_delivery_min"
	SettingFieldDeliveryFee       = "delivery_fee"
	SettingFieldNewArrivalWindow  = "window_days"
	SettingFieldStoreAnnouncement = "announcement"
)

// 异步任务类型常量
const (
	TaskOrderStatusEmail   = "order:status_email"
	TaskPasswordResetEmail = "user:password_reset_email"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 游客状态作用域常量
const (
	GuestScopeCart      = "cart"
	GuestScopeFavorites = "favorites"
	GuestScopeProfile   = "profile"
)
