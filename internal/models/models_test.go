package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/aura_shop/pkg/db/dbtest"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.Open(t, &Product{}, &Order{}, &User{}, &RefreshToken{})
}

func TestProductPersistsBenefitsAndPrice(t *testing.T) {
	db := openTestDB(t)

	p := Product{
		Name:     "Night Serum",
		Price:    decimal.RequireFromString("25.50"),
		Benefits: Benefits{"hydrating", "glow, radiance"},
	}
	require.NoError(t, db.Create(&p).Error)
	require.NotEmpty(t, p.ID)

	var got Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, Benefits{"hydrating", "glow, radiance"}, got.Benefits)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("25.5")))
}

func TestNilBenefitsStoredAsEmpty(t *testing.T) {
	db := openTestDB(t)

	p := Product{Name: "Plain", Price: decimal.NewFromInt(1)}
	require.NoError(t, db.Create(&p).Error)

	var got Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Empty(t, got.Benefits)
}

func TestOrderJSONColumns(t *testing.T) {
	db := openTestDB(t)

	o := Order{
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		CustomerPhone: "+1555",
		ShippingAddress: ShippingAddress{
			FirstName: "Ada", LastName: "Lovelace", Address: "1 Loop", City: "London", State: "LDN", Zip: "N1",
		},
		OrderItems: OrderItems{
			{ID: "p1", Name: "Serum", Price: decimal.RequireFromString("10.00"), Quantity: 2, Image: "s.jpg"},
		},
		TotalAmount:  decimal.RequireFromString("20.00"),
		Status:       StatusPending,
		PaymentState: PaymentNone,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.Create(&o).Error)

	var got Order
	require.NoError(t, db.First(&got, "id = ?", o.ID).Error)
	assert.Equal(t, o.ShippingAddress, got.ShippingAddress)
	require.Len(t, got.OrderItems, 1)
	assert.Equal(t, 2, got.OrderItems[0].Quantity)
	assert.True(t, got.OrderItems[0].Price.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, StatusPending, got.Status)
	assert.Equal(t, PaymentNone, got.PaymentState)
}

func TestEnums(t *testing.T) {
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.True(t, PaymentRefunded.Valid())
	assert.False(t, PaymentState("").Valid())
}
