package engine

import "math"

// OrdinaryIncomeTax computes marginal federal tax on taxable income for the
// given filing status by walking the configured bracket table. Returns 0 for
// income <= 0 and is monotonically non-decreasing in income.
func (e *Engine) OrdinaryIncomeTax(income float64, filingStatus string) float64 {
	if income <= 0 {
		return 0
	}

	var tax float64
	var lower float64
	for _, b := range e.cfg.FederalBrackets[filingStatus] {
		if income <= lower {
			break
		}
		taxable := math.Min(income, b.UpTo) - lower
		if taxable > 0 {
			tax += taxable * b.Rate
		}
		lower = b.UpTo
	}
	return tax
}
