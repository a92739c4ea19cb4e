package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GrantType enum constants
const (
	GrantTypeRSU = "RSU"
	GrantTypeISO = "ISO"
)

// VestingVariant enum constants
const (
	VestingCliff1Yr  = "CLIFF_1YR" // 25% at 12 months, then quarterly
	VestingQuarterly = "QUARTERLY" // 16 equal quarterly tranches
)

// Grant is a single equity award under a client. StrikePrice is nullable and
// required only for ISO grants; WithholdingRate is the RSU elected rate as a
// fraction, NULL meaning the statutory default.
type Grant struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"client_id"`
	Type            string           `gorm:"type:varchar(10);not null" json:"type"`   // RSU, ISO
	Ticker          string           `gorm:"type:varchar(12)" json:"ticker"`          // empty for private companies
	SharePrice      decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"share_price"` // current FMV
	StrikePrice     *decimal.Decimal `gorm:"type:decimal(18,4)" json:"strike_price"`
	GrantDate       time.Time        `gorm:"type:date;not null" json:"grant_date"`
	TotalShares     decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"total_shares"`
	VestingVariant  string           `gorm:"type:varchar(20);not null" json:"vesting_variant"` // CLIFF_1YR, QUARTERLY
	WithholdingRate *decimal.Decimal `gorm:"type:decimal(7,6)" json:"withholding_rate"`
	PriceSource     string           `gorm:"type:varchar(255)" json:"price_source"` // URL of the last quote, empty if manual
	PriceUpdatedAt  *time.Time       `json:"price_updated_at"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}
