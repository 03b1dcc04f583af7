package transport

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/aura_shop/internal/models"
)

type CreateProductRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	LuxuryImageURL string          `json:"luxury_image_url"`
	Category       string          `json:"category"`
	Rating         float64         `json:"rating"`
	Benefits       []string        `json:"benefits"`
	InStock        *bool           `json:"in_stock"`
	Featured       bool            `json:"featured"`
}

func (r CreateProductRequest) Product() models.Product {
	inStock := true
	if r.InStock != nil {
		inStock = *r.InStock
	}
	return models.Product{
		Name:           strings.TrimSpace(r.Name),
		Description:    r.Description,
		Price:          r.Price,
		LuxuryImageURL: r.LuxuryImageURL,
		Category:       r.Category,
		Rating:         r.Rating,
		Benefits:       models.Benefits(r.Benefits),
		InStock:        inStock,
		Featured:       r.Featured,
	}
}

type PatchProductRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Price          *decimal.Decimal `json:"price"`
	LuxuryImageURL *string          `json:"luxury_image_url"`
	Category       *string          `json:"category"`
	Rating         *float64         `json:"rating"`
	Benefits       *[]string        `json:"benefits"`
	InStock        *bool            `json:"in_stock"`
	Featured       *bool            `json:"featured"`
}

func (r PatchProductRequest) ApplyTo(p *models.Product) {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.LuxuryImageURL != nil {
		p.LuxuryImageURL = *r.LuxuryImageURL
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Rating != nil {
		p.Rating = *r.Rating
	}
	if r.Benefits != nil {
		p.Benefits = models.Benefits(*r.Benefits)
	}
	if r.InStock != nil {
		p.InStock = *r.InStock
	}
	if r.Featured != nil {
		p.Featured = *r.Featured
	}
}

type AddToCartRequest struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta"`
}

type SetOpenRequest struct {
	Open bool `json:"open"`
}

type CartItemResponse struct {
	models.Product
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Count    int                `json:"count"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Shipping decimal.Decimal    `json:"shipping"`
	Tax      decimal.Decimal    `json:"tax"`
	Total    decimal.Decimal    `json:"total"`
	Open     bool               `json:"open"`
}

// CheckoutRequest is the shipping form.
type CheckoutRequest struct {
	Email     string `json:"email"     form:"email"`
	Phone     string `json:"phone"     form:"phone"`
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName"  form:"lastName"`
	Address   string `json:"address"   form:"address"`
	City      string `json:"city"      form:"city"`
	State     string `json:"state"     form:"state"`
	Zip       string `json:"zip"       form:"zip"`
}

type CheckoutResponse struct {
	Order           models.Order `json:"order"`
	NotificationURL string       `json:"notification_url"`
	RedirectAfterMS int64        `json:"redirect_after_ms"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Role        string `json:"role"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type WhatsAppLinkResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}
