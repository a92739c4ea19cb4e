package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlannedExercise records an advisor's decision to exercise ISO shares.
// Rows are immutable once created: the API offers create, list, and delete
// only, and CashCost/AMTExposure are computed by the engine at creation time.
type PlannedExercise struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	GrantID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"grant_id"`
	Shares        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"shares"`
	ExerciseDate  time.Time       `gorm:"type:date;not null" json:"exercise_date"`
	StrikePrice   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"strike_price"`
	FMVAtExercise decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"fmv_at_exercise"`
	CashCost      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"cash_cost"`
	AMTExposure   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"amt_exposure"` // bargain element if held, 0 for same-year sale
	SellSameYear  bool            `gorm:"default:false" json:"sell_same_year"`
	CreatedAt     time.Time       `json:"created_at"`
}
