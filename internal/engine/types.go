package engine

import "time"

// FilingStatus enum constants
const (
	FilingSingle       = "single"
	FilingMarriedJoint = "married_joint"
)

// GrantType enum constants
const (
	GrantTypeRSU = "RSU"
	GrantTypeISO = "ISO"
)

// VestingVariant enum constants
const (
	// VestingCliff1Yr releases 25% after 12 months, then the remaining 75%
	// in 12 equal quarterly tranches.
	VestingCliff1Yr = "CLIFF_1YR"
	// VestingQuarterly releases 16 equal tranches starting 3 months after grant.
	VestingQuarterly = "QUARTERLY"
)

// Client is a client's tax profile as seen by the calculation engine.
// Optional fields are pointers: nil means "not set, resolve the default".
type Client struct {
	FilingStatus      string
	FederalBracket    float64 // marginal ordinary bracket as a percent, 0..100
	StateCode         string
	EstimatedIncome   *float64 // annual gross income; nil resolves to the configured default
	StateRateOverride *float64 // fraction, e.g. 0.093; takes precedence over the state table
	LTCGRateOverride  *float64 // fraction; takes precedence over the two-tier model
	Grants            []Grant
	Exercises         []PlannedExercise
}

// Grant is a single equity award.
type Grant struct {
	ID              string
	Type            string // RSU or ISO
	Ticker          string // empty for private companies
	Price           float64
	Strike          *float64 // required when Type == ISO, meaningless otherwise
	GrantDate       time.Time
	TotalShares     float64
	VestingVariant  string
	WithholdingRate *float64 // RSU elected withholding as a fraction; nil resolves to the default
}

// PlannedExercise records an advisor's decision to exercise ISO shares.
// Immutable once created; lifecycle is owned by the caller.
type PlannedExercise struct {
	GrantID       string
	Shares        float64
	ExerciseDate  time.Time
	Strike        float64
	FMVAtExercise float64
	CashCost      float64
	AMTExposure   float64 // bargain element if held, 0 for a same-year disqualifying sale
}

// TaxBreakdown itemizes a tax liability by source. Value object, no identity.
type TaxBreakdown struct {
	FederalRate   float64 `json:"federal_rate"`
	FederalAmount float64 `json:"federal_amount"`
	NIITRate      float64 `json:"niit_rate"`
	NIITAmount    float64 `json:"niit_amount"`
	StateRate     float64 `json:"state_rate"`
	StateAmount   float64 `json:"state_amount"`
	Total         float64 `json:"total"`
}

// VestingEvent is one derived vesting tranche. Regenerated on every query,
// never persisted or mutated after construction.
type VestingEvent struct {
	Date              time.Time    `json:"date"`
	Shares            float64      `json:"shares"`
	GrossValue        float64      `json:"gross_value"`
	Withholding       float64      `json:"withholding"`
	WithholdingRate   float64      `json:"withholding_rate"`
	NetShares         float64      `json:"net_shares"`
	NetValue          float64      `json:"net_value"`
	SharesSoldToCover float64      `json:"shares_sold_to_cover"`
	TaxGap            float64      `json:"tax_gap"`
	AMTExposure       float64      `json:"amt_exposure"` // always 0: vesting is not an ISO taxable event
	Past              bool         `json:"past"`         // date strictly before the evaluation instant
	Tax               TaxBreakdown `json:"tax"`
}

// GrantStatus summarizes share counts for a grant at an evaluation instant.
type GrantStatus struct {
	Total     float64 `json:"total"`
	Vested    float64 `json:"vested"`
	Unvested  float64 `json:"unvested"`
	Exercised float64 `json:"exercised"`
	Available float64 `json:"available"` // max(0, vested - exercised)
}

// EffectiveRates are the resolved state and federal LTCG rates for a client.
type EffectiveRates struct {
	StateRate   float64 `json:"state_rate"`
	FedLTCGRate float64 `json:"fed_ltcg_rate"`
}

// AMTRoomReport estimates how much additional ISO bargain-element spread a
// client can realize this year before tentative minimum tax exceeds regular tax.
type AMTRoomReport struct {
	Room               float64 `json:"room"`
	Indeterminate      bool    `json:"indeterminate"` // search cap reached without a breakeven; Room is not a real figure
	RegularTax         float64 `json:"regular_tax"`
	ProjectedRSUIncome float64 `json:"projected_rsu_income"`
	BaseIncome         float64 `json:"base_income"`
	StdDeduction       float64 `json:"std_deduction"`
	PersonalExemptions float64 `json:"personal_exemptions"`
	EffectiveDeduction float64 `json:"effective_deduction"`
	IsItemizing        bool    `json:"is_itemizing"`
	EstimatedStateTax  float64 `json:"estimated_state_tax"`
}

// ISOScenario is a full qualified or disqualified disposition computation.
type ISOScenario struct {
	Qualified      bool         `json:"qualified"`
	Shares         float64      `json:"shares"`
	FMVAtExercise  float64      `json:"fmv_at_exercise"`
	SalePrice      float64      `json:"sale_price"`
	ExerciseCost   float64      `json:"exercise_cost"`
	SaleProceeds   float64      `json:"sale_proceeds"`
	OrdinaryIncome float64      `json:"ordinary_income"`
	CapitalGain    float64      `json:"capital_gain"`
	AMTPreference  float64      `json:"amt_preference"`
	Tax            TaxBreakdown `json:"tax"`
	NetProfit      float64      `json:"net_profit"` // sale proceeds - exercise cost - total tax
}

// DispositionInput describes an ISO sale to evaluate.
type DispositionInput struct {
	Shares        float64
	Strike        float64
	FMVAtExercise float64
	SalePrice     float64
}
