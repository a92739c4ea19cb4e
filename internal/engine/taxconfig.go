package engine

import "math"

// Bracket is one step of a progressive rate table. UpTo is the upper bound of
// taxable income for the bracket; the top bracket uses +Inf.
type Bracket struct {
	UpTo float64
	Rate float64
}

// TaxYearConfig carries every rate table and threshold the engine needs for a
// single projected tax year. It is immutable once constructed and injected at
// engine construction, so supporting a future year means swapping a value,
// not editing code.
type TaxYearConfig struct {
	Year int

	// Federal ordinary income brackets per filing status.
	FederalBrackets map[string][]Bracket

	// State effective rates by two-letter code, plus the catch-all applied to
	// any code not in the table. Unknown states are never an error.
	StateRates       map[string]float64
	DefaultStateRate float64

	// Two-tier LTCG model: TopRate when the client's ordinary bracket percent
	// exceeds BracketCutoff, BaseRate otherwise.
	LTCGBaseRate      float64
	LTCGTopRate       float64
	LTCGBracketCutoff float64

	NIITRate float64

	// RSU withholding elected rate fallback.
	DefaultWithholdingRate float64

	// Assumed annual income when the client has no estimate on file.
	DefaultEstimatedIncome float64

	StandardDeduction    map[string]float64
	PersonalExemption    float64 // per person; doubled for married_joint
	AMTExemption         map[string]float64
	AMTPhaseoutThreshold map[string]float64
	AMTPhaseoutRate      float64 // exemption lost per dollar of AMTI over the threshold
	AMTLowRate           float64
	AMTHighRate          float64
	AMTRateThreshold     float64 // AMT base above this is taxed at AMTHighRate

	// Bounds for the AMT room search.
	AMTSearchStep float64
	AMTSearchCap  float64
}

// DefaultTaxYearConfig returns the single hardcoded projected-year rule set.
// The figures are a modeling simplification, not legal advice: state rates are
// flat effective approximations and the LTCG schedule is collapsed to two tiers.
func DefaultTaxYearConfig() TaxYearConfig {
	return TaxYearConfig{
		Year: 2025,
		FederalBrackets: map[string][]Bracket{
			FilingSingle: {
				{UpTo: 11600, Rate: 0.10},
				{UpTo: 47150, Rate: 0.12},
				{UpTo: 100525, Rate: 0.22},
				{UpTo: 191950, Rate: 0.24},
				{UpTo: 243725, Rate: 0.32},
				{UpTo: 609350, Rate: 0.35},
				{UpTo: math.Inf(1), Rate: 0.37},
			},
			FilingMarriedJoint: {
				{UpTo: 23200, Rate: 0.10},
				{UpTo: 94300, Rate: 0.12},
				{UpTo: 201050, Rate: 0.22},
				{UpTo: 383900, Rate: 0.24},
				{UpTo: 487450, Rate: 0.32},
				{UpTo: 731200, Rate: 0.35},
				{UpTo: math.Inf(1), Rate: 0.37},
			},
		},
		StateRates: map[string]float64{
			"CA": 0.144, // top marginal incl. SDI
			"NY": 0.109,
			"NJ": 0.1075,
			"OR": 0.099,
			"MN": 0.0985,
			"HI": 0.11,
			"MA": 0.09,
			"VA": 0.0575,
			"GA": 0.0575,
			"IL": 0.0495,
			"NC": 0.045,
			"CO": 0.044,
			"WA": 0.07, // capital gains excise treated as a flat effective rate
			"TX": 0,
			"FL": 0,
			"NV": 0,
			"WY": 0,
			"TN": 0,
			"SD": 0,
			"AK": 0,
			"NH": 0,
		},
		DefaultStateRate: 0.05,

		LTCGBaseRate:      0.15,
		LTCGTopRate:       0.20,
		LTCGBracketCutoff: 33,

		NIITRate: 0.038,

		DefaultWithholdingRate: 0.22,
		DefaultEstimatedIncome: 250000,

		StandardDeduction: map[string]float64{
			FilingSingle:       14600,
			FilingMarriedJoint: 29200,
		},
		PersonalExemption: 4050,
		AMTExemption: map[string]float64{
			FilingSingle:       85700,
			FilingMarriedJoint: 133300,
		},
		AMTPhaseoutThreshold: map[string]float64{
			FilingSingle:       609350,
			FilingMarriedJoint: 1218700,
		},
		AMTPhaseoutRate:  0.25,
		AMTLowRate:       0.26,
		AMTHighRate:      0.28,
		AMTRateThreshold: 232600,

		AMTSearchStep: 1000,
		AMTSearchCap:  10000000,
	}
}
