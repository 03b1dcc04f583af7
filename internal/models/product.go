package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID             string          `gorm:"type:uuid;primaryKey"          json:"id"`
	Name           string          `gorm:"not null"                      json:"name"`
	Description    string          `gorm:"not null;default:''"           json:"description"`
	Price          decimal.Decimal `gorm:"type:numeric(12,2);not null"   json:"price"`
	LuxuryImageURL string          `gorm:"column:luxury_image_url"       json:"luxury_image_url"`
	Category       string          `gorm:"not null;default:''"           json:"category"`
	Rating         float64         `gorm:"not null;default:0"            json:"rating"`
	Benefits       Benefits        `gorm:"not null"                      json:"benefits"`
	InStock        bool            `gorm:"not null"                      json:"in_stock"`
	Featured       bool            `gorm:"not null;default:false"        json:"featured"`
	CreatedAt      time.Time       `gorm:"index"                         json:"created_at"`
	UpdatedAt      time.Time       `                                     json:"updated_at"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
