package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PaymentState replaces the free-form payment blob; no payment is ever processed here.
type PaymentState string

const (
	PaymentNone     PaymentState = "none"
	PaymentAwaiting PaymentState = "awaiting"
	PaymentPaid     PaymentState = "paid"
	PaymentRefunded PaymentState = "refunded"
)

func (p PaymentState) Valid() bool {
	switch p {
	case PaymentNone, PaymentAwaiting, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

func (a ShippingAddress) Value() (driver.Value, error) { return jsonValue(a) }
func (a *ShippingAddress) Scan(src any) error { return jsonScan(src, a) }

func (ShippingAddress) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonDataType(db)
}

type OrderItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		return jsonValue([]OrderItem{})
	}
	return jsonValue([]OrderItem(o))
}

func (o *OrderItems) Scan(src any) error { return jsonScan(src, o) }

func (OrderItems) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonDataType(db)
}

type Order struct {
	ID              string          `gorm:"type:uuid;primaryKey"        json:"id"`
	CustomerName    string          `gorm:"not null"                    json:"customer_name"`
	CustomerEmail   string          `gorm:"not null"                    json:"customer_email"`
	CustomerPhone   string          `gorm:"not null"                    json:"customer_phone"`
	ShippingAddress ShippingAddress `gorm:"not null"                    json:"shipping_address"`
	OrderItems      OrderItems      `gorm:"not null"                    json:"order_items"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status          OrderStatus     `gorm:"not null;default:pending"    json:"status"`
	PaymentState    PaymentState    `gorm:"not null;default:none"       json:"payment_state"`
	CreatedAt       time.Time       `gorm:"index"                       json:"created_at"`
	UpdatedAt       time.Time       `                                   json:"updated_at"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
