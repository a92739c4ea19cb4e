package engine

import (
	"math"
	"time"
)

// AMTRoom estimates the maximum additional ISO bargain-element spread the
// client can realize in asOf's calendar year before tentative minimum tax
// exceeds regular tax, i.e. before AMT becomes the binding tax.
//
// Regular tax is computed from projected RSU vesting income plus the client's
// base income, less the greater of estimated state tax (itemized) and the
// standard deduction, less personal exemptions. The search then walks spread
// upward in fixed steps; for AMT purposes state tax, the standard deduction,
// and personal exemptions are all added back, and the exemption phases out
// linearly above the configured threshold. The search is bounded: if no
// breakeven is found before the cap, the report is flagged Indeterminate and
// Room must not be read as a literal dollar figure.
func (e *Engine) AMTRoom(c Client, asOf time.Time) (AMTRoomReport, error) {
	if err := e.validateClient(c); err != nil {
		return AMTRoomReport{}, err
	}

	projectedRSU, err := e.projectedRSUIncome(c, asOf)
	if err != nil {
		return AMTRoomReport{}, err
	}

	baseIncome := e.cfg.DefaultEstimatedIncome
	if c.EstimatedIncome != nil {
		baseIncome = *c.EstimatedIncome
	}
	totalGross := baseIncome + projectedRSU

	rates := e.EffectiveRates(c)
	estStateTax := totalGross * rates.StateRate

	stdDeduction := e.cfg.StandardDeduction[c.FilingStatus]
	itemized := estStateTax // SALT is the only itemized deduction modeled
	isItemizing := itemized > stdDeduction
	effectiveDeduction := math.Max(itemized, stdDeduction)

	exemptions := e.cfg.PersonalExemption
	if c.FilingStatus == FilingMarriedJoint {
		exemptions *= 2
	}

	regularTaxable := math.Max(0, totalGross-effectiveDeduction-exemptions)
	regularTax := e.OrdinaryIncomeTax(regularTaxable, c.FilingStatus)

	report := AMTRoomReport{
		RegularTax:         regularTax,
		ProjectedRSUIncome: projectedRSU,
		BaseIncome:         baseIncome,
		StdDeduction:       stdDeduction,
		PersonalExemptions: exemptions,
		EffectiveDeduction: effectiveDeduction,
		IsItemizing:        isItemizing,
		EstimatedStateTax:  estStateTax,
	}

	step := e.cfg.AMTSearchStep
	for spread := 0.0; spread <= e.cfg.AMTSearchCap; spread += step {
		tmt := e.tentativeMinimumTax(totalGross+spread, c.FilingStatus)
		if tmt > regularTax {
			report.Room = math.Max(0, spread-step)
			return report, nil
		}
	}

	// Cap exhausted without a breakeven: very low tax burden relative to AMT
	// thresholds. Surface the condition explicitly instead of a fake figure.
	report.Room = e.cfg.AMTSearchCap
	report.Indeterminate = true
	return report, nil
}

// tentativeMinimumTax computes two-tier TMT on alternative minimum taxable
// income after the phasing-out exemption. State tax, standard deduction, and
// personal exemptions are not deductible for AMT, so amti is simply total
// gross income plus realized spread.
func (e *Engine) tentativeMinimumTax(amti float64, filingStatus string) float64 {
	exemption := e.cfg.AMTExemption[filingStatus]
	if over := amti - e.cfg.AMTPhaseoutThreshold[filingStatus]; over > 0 {
		exemption = math.Max(0, exemption-over*e.cfg.AMTPhaseoutRate)
	}

	base := math.Max(0, amti-exemption)
	if base <= e.cfg.AMTRateThreshold {
		return base * e.cfg.AMTLowRate
	}
	return e.cfg.AMTRateThreshold*e.cfg.AMTLowRate +
		(base-e.cfg.AMTRateThreshold)*e.cfg.AMTHighRate
}

// projectedRSUIncome sums RSU gross vesting value landing in asOf's calendar year.
func (e *Engine) projectedRSUIncome(c Client, asOf time.Time) (float64, error) {
	var total float64
	for _, g := range c.Grants {
		if g.Type != GrantTypeRSU {
			continue
		}
		events, err := e.GenerateVestingSchedule(g, c, false, asOf)
		if err != nil {
			return 0, err
		}
		for _, ev := range events {
			if ev.Date.Year() == asOf.Year() {
				total += ev.GrossValue
			}
		}
	}
	return total, nil
}
