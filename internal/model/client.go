package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FilingStatus enum constants
const (
	FilingSingle       = "single"
	FilingMarriedJoint = "married_joint"
)

// Client is an advisor-managed tax profile owning equity grants and planned
// exercises. Rate override columns are nullable: NULL means "use the table",
// and a stored zero is a genuine zero-rate override.
type Client struct {
	ID                uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AdvisorID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"advisor_id"`
	Advisor           *User             `gorm:"foreignKey:AdvisorID" json:"-"`
	Name              string            `gorm:"type:varchar(255);not null" json:"name"`
	FilingStatus      string            `gorm:"type:varchar(20);not null" json:"filing_status"` // single, married_joint
	FederalBracket    decimal.Decimal   `gorm:"type:decimal(5,2);not null" json:"federal_bracket"` // marginal ordinary bracket, percent
	StateCode         string            `gorm:"type:varchar(2);not null" json:"state_code"`
	EstimatedIncome   *decimal.Decimal  `gorm:"type:decimal(18,2)" json:"estimated_income"`
	StateRateOverride *decimal.Decimal  `gorm:"type:decimal(7,6)" json:"state_rate_override"` // fraction
	LTCGRateOverride  *decimal.Decimal  `gorm:"type:decimal(7,6)" json:"ltcg_rate_override"`  // fraction
	Grants            []Grant           `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"grants"`
	Exercises         []PlannedExercise `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"exercises"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	DeletedAt         gorm.DeletedAt    `gorm:"index" json:"-"`
}
