// Package engine implements the deterministic tax and vesting calculations
// behind equity compensation planning: vesting schedule expansion with
// withholding and tax-gap analysis, AMT room estimation via bounded search,
// and qualified vs disqualified ISO disposition comparison.
//
// Every operation is a pure function of its inputs and the injected
// TaxYearConfig. The engine performs no I/O, holds no mutable state, and is
// safe for concurrent use.
package engine

// Engine evaluates tax and vesting queries against one projected tax year.
type Engine struct {
	cfg TaxYearConfig
}

// NewEngine returns an engine bound to the given tax year configuration.
func NewEngine(cfg TaxYearConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the tax year configuration the engine was built with.
func (e *Engine) Config() TaxYearConfig {
	return e.cfg
}

func (e *Engine) validateClient(c Client) error {
	if c.FederalBracket < 0 || c.FederalBracket > 100 {
		return invalidf("federal_bracket", "must be between 0 and 100, got %v", c.FederalBracket)
	}
	switch c.FilingStatus {
	case FilingSingle, FilingMarriedJoint:
	default:
		return invalidf("filing_status", "must be %q or %q, got %q", FilingSingle, FilingMarriedJoint, c.FilingStatus)
	}
	return nil
}

func (e *Engine) validateGrant(g Grant) error {
	if g.TotalShares <= 0 {
		return invalidf("total_shares", "must be positive, got %v", g.TotalShares)
	}
	switch g.Type {
	case GrantTypeRSU:
	case GrantTypeISO:
		if g.Strike == nil {
			return invalidf("strike_price", "required for ISO grants")
		}
	default:
		return invalidf("grant_type", "must be %q or %q, got %q", GrantTypeRSU, GrantTypeISO, g.Type)
	}
	switch g.VestingVariant {
	case VestingCliff1Yr, VestingQuarterly:
	default:
		return invalidf("vesting_variant", "must be %q or %q, got %q", VestingCliff1Yr, VestingQuarterly, g.VestingVariant)
	}
	return nil
}
