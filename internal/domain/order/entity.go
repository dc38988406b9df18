// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// Payment methods
const (
	PayMethodOnDelivery = 1 // cash on delivery
	PayMethodWeChat     = 2
	PayMethodAlipay     = 3
	PayMethodUnionPay   = 4
)

// Order lifecycle statuses
const (
	StatusUnpaid    = 1
	StatusPaid      = 2
	StatusShipped   = 3
	StatusDelivered = 4
	StatusCompleted = 5
)

// statusNames maps order statuses to display names
var statusNames = map[int]string{
	StatusUnpaid:    "unpaid",
	StatusPaid:      "paid",
	StatusShipped:   "shipped",
	StatusDelivered: "delivered",
	StatusCompleted: "completed",
}

// payMethodNames maps payment methods to display names
var payMethodNames = map[int]string{
	PayMethodOnDelivery: "pay on delivery",
	PayMethodWeChat:     "wechat pay",
	PayMethodAlipay:     "alipay",
	PayMethodUnionPay:   "unionpay",
}

// ValidPayMethod reports whether m is a known payment method
func ValidPayMethod(m int) bool {
	_, ok := payMethodNames[m]
	return ok
}

// OrderInfo represents one placed order. The primary key is an opaque
// string assigned at commit time, not an auto-increment integer.
type OrderInfo struct {
	OrderID     string         `gorm:"primaryKey;size:64" json:"order_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	AddressID   uint           `gorm:"not null" json:"address_id"`
	TotalCount  int            `gorm:"not null" json:"total_count"`
	TotalAmount int64          `gorm:"not null" json:"total_amount"` // goods amount in cents, excl. freight
	TransCost   int64          `gorm:"not null" json:"trans_cost"`   // freight in cents
	PayMethod   int            `gorm:"not null" json:"pay_method"`
	Status      int            `gorm:"not null;default:1" json:"status"`
	TradeNo     string         `gorm:"size:128" json:"trade_no"` // external payment reference
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Goods []OrderGoods `gorm:"foreignKey:OrderID;references:OrderID" json:"goods,omitempty"`
}

// OrderGoods is one line of a placed order with the price frozen at
// commit time
type OrderGoods struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   string    `gorm:"not null;index;size:64" json:"order_id"`
	SKUID     uint      `gorm:"not null;index" json:"sku_id"`
	Count     int       `gorm:"not null" json:"count"`
	Price     int64     `gorm:"not null" json:"price"` // unit price in cents at commit time
	Comment   string    `gorm:"size:256" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides keep the original storefront schema names
func (OrderInfo) TableName() string  { return "df_order_info" }
func (OrderGoods) TableName() string { return "df_order_goods" }

// StatusName returns the display name of the order's status
func (o *OrderInfo) StatusName() string {
	if name, ok := statusNames[o.Status]; ok {
		return name
	}
	return "unknown"
}

// PayMethodName returns the display name of the order's payment method
func (o *OrderInfo) PayMethodName() string {
	if name, ok := payMethodNames[o.PayMethod]; ok {
		return name
	}
	return "unknown"
}

// GrandTotal is the amount due: goods plus freight
func (o *OrderInfo) GrandTotal() int64 {
	return o.TotalAmount + o.TransCost
}
