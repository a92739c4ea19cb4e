package engine

import "math"

// CompareDisposition evaluates both sides of the qualified vs disqualified
// question for one ISO sale. The two scenarios are always read together.
func (e *Engine) CompareDisposition(in DispositionInput, c Client) (qualified, disqualified ISOScenario, err error) {
	qualified, err = e.DispositionScenario(in, c, true)
	if err != nil {
		return ISOScenario{}, ISOScenario{}, err
	}
	disqualified, err = e.DispositionScenario(in, c, false)
	if err != nil {
		return ISOScenario{}, ISOScenario{}, err
	}
	return qualified, disqualified, nil
}

// DispositionScenario computes a full ISO sale scenario: ordinary income,
// capital gain, AMT preference, tax breakdown, and net profit.
//
// Qualified (held >=1yr post-exercise and >=2yr post-grant): the entire gain
// over exercise cost is long-term capital gain taxed at the LTCG rate plus
// NIIT plus state; the full bargain element remains an AMT preference item in
// the exercise year, tracked for disclosure rather than re-taxed here.
//
// Disqualified: the bargain element (capped by actual gain) converts to
// ordinary income at the client's marginal rate plus state; only appreciation
// beyond the exercise-date FMV is capital gain; the disqualifying sale
// eliminates the AMT preference in the same tax year.
func (e *Engine) DispositionScenario(in DispositionInput, c Client, isQualified bool) (ISOScenario, error) {
	if err := e.validateClient(c); err != nil {
		return ISOScenario{}, err
	}
	if in.Shares <= 0 {
		return ISOScenario{}, invalidf("shares", "must be positive, got %v", in.Shares)
	}
	if in.Strike < 0 || in.FMVAtExercise < 0 || in.SalePrice < 0 {
		return ISOScenario{}, invalidf("price", "strike, FMV, and sale price must be non-negative")
	}

	rates := e.EffectiveRates(c)
	ordinaryRate := c.FederalBracket / 100

	s := ISOScenario{
		Qualified:     isQualified,
		Shares:        in.Shares,
		FMVAtExercise: in.FMVAtExercise,
		SalePrice:     in.SalePrice,
		ExerciseCost:  in.Shares * in.Strike,
		SaleProceeds:  in.Shares * in.SalePrice,
	}
	bargainElement := math.Max(0, (in.FMVAtExercise-in.Strike)*in.Shares)

	if isQualified {
		s.CapitalGain = math.Max(0, s.SaleProceeds-s.ExerciseCost)
		s.AMTPreference = bargainElement
		s.Tax = TaxBreakdown{
			FederalRate:   rates.FedLTCGRate,
			FederalAmount: s.CapitalGain * rates.FedLTCGRate,
			NIITRate:      e.cfg.NIITRate,
			NIITAmount:    s.CapitalGain * e.cfg.NIITRate,
			StateRate:     rates.StateRate,
			StateAmount:   s.CapitalGain * rates.StateRate,
		}
	} else {
		actualGain := s.SaleProceeds - s.ExerciseCost
		s.OrdinaryIncome = math.Max(0, math.Min(bargainElement, actualGain))
		s.CapitalGain = math.Max(0, s.SaleProceeds-in.Shares*in.FMVAtExercise)
		s.Tax = TaxBreakdown{
			FederalRate:   ordinaryRate,
			FederalAmount: s.OrdinaryIncome*ordinaryRate + s.CapitalGain*rates.FedLTCGRate,
			NIITRate:      e.cfg.NIITRate,
			NIITAmount:    s.CapitalGain * e.cfg.NIITRate,
			StateRate:     rates.StateRate,
			StateAmount:   (s.OrdinaryIncome + s.CapitalGain) * rates.StateRate,
		}
	}

	s.Tax.Total = s.Tax.FederalAmount + s.Tax.NIITAmount + s.Tax.StateAmount
	s.NetProfit = s.SaleProceeds - s.ExerciseCost - s.Tax.Total
	return s, nil
}

// ExercisePlan prices a planned ISO exercise: cash cost and AMT exposure.
// When the shares will be sold in the same year (a planned disqualifying
// disposition) the exposure is zero; otherwise it is the bargain element.
func (e *Engine) ExercisePlan(g Grant, shares float64, sellSameYear bool) (cashCost, amtExposure float64, err error) {
	if err := e.validateGrant(g); err != nil {
		return 0, 0, err
	}
	if g.Type != GrantTypeISO {
		return 0, 0, invalidf("grant_type", "only ISO grants can be exercised, got %q", g.Type)
	}
	if shares <= 0 {
		return 0, 0, invalidf("shares", "must be positive, got %v", shares)
	}

	cashCost = shares * *g.Strike
	if !sellSameYear {
		amtExposure = math.Max(0, (g.Price-*g.Strike)*shares)
	}
	return cashCost, amtExposure, nil
}
