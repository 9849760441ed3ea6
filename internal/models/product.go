package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductState is the lifecycle state of a product. A product is always in
// exactly one state; the ledger is the only writer.
type ProductState string

const (
	StateAvailable         ProductState = "AVAILABLE"
	StatePendingAcceptance ProductState = "PENDING_ACCEPTANCE"
	StateInHand            ProductState = "IN_HAND"
	StateReturnApplied     ProductState = "RETURN_APPLIED"
	StateSold              ProductState = "SOLD"
)

func (s ProductState) Valid() bool {
	switch s {
	case StateAvailable, StatePendingAcceptance, StateInHand, StateReturnApplied, StateSold:
		return true
	}
	return false
}

type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SKU         string `gorm:"size:50;uniqueIndex;not null" json:"sku"`
	Name        string `gorm:"size:150;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:100" json:"category"`
	SubCategory string `gorm:"size:100" json:"sub_category"`
	DesignCode  string `gorm:"size:50" json:"design_code"`
	Barcode     string `gorm:"size:50;index" json:"barcode"`

	Karat    int             `json:"karat"`
	Purity   decimal.Decimal `gorm:"type:decimal(6,3)" json:"purity"`
	GoldType string          `gorm:"size:50" json:"gold_type"`

	// Weights in grams. net = gross - stone is expected upstream but not
	// enforced here; pure weight is the pricing basis.
	GrossWeight decimal.Decimal `gorm:"type:decimal(12,3)" json:"gross_weight"`
	StoneWeight decimal.Decimal `gorm:"type:decimal(12,3)" json:"stone_weight"`
	NetWeight   decimal.Decimal `gorm:"type:decimal(12,3)" json:"net_weight"`
	PureWeight  decimal.Decimal `gorm:"type:decimal(12,3)" json:"pure_weight"`

	HasStones  bool            `gorm:"default:false" json:"has_stones"`
	StoneType  string          `gorm:"size:50" json:"stone_type"`
	StoneCount int             `json:"stone_count"`
	MakingRate decimal.Decimal `gorm:"type:decimal(20,4)" json:"making_rate"`
	MakingAmt  decimal.Decimal `gorm:"type:decimal(20,4)" json:"making_amount"`
	Price      decimal.Decimal `gorm:"type:decimal(20,4)" json:"price"`

	State ProductState `gorm:"size:30;not null;default:'AVAILABLE';index" json:"state"`
	// Set while state is PENDING_ACCEPTANCE, IN_HAND or RETURN_APPLIED; kept
	// on SOLD for history; cleared when the product returns to AVAILABLE.
	SalespersonID *uint        `gorm:"index" json:"salesperson_id"`
	Salesperson   *Salesperson `gorm:"foreignKey:SalespersonID" json:"salesperson,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TransitionLog is the append-only audit trail of lifecycle transitions.
// Rows are never updated or deleted.
type TransitionLog struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	ProductID uint         `gorm:"index;not null" json:"product_id"`
	FromState ProductState `gorm:"size:30;not null" json:"from_state"`
	ToState   ProductState `gorm:"size:30;not null" json:"to_state"`
	Event     string       `gorm:"size:40;not null" json:"event"`
	ActorID   uint         `json:"actor_id"`
	ActorRole string       `gorm:"size:20" json:"actor_role"`
	CreatedAt time.Time    `json:"created_at"`
}
