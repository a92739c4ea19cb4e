package engine

// EffectiveRates resolves the state tax rate and federal LTCG rate for a
// client. Manual overrides win; otherwise the state rate comes from the
// configured table with unknown codes falling back to the catch-all rate,
// and the LTCG rate follows the two-tier bracket-cutoff model.
func (e *Engine) EffectiveRates(c Client) EffectiveRates {
	return EffectiveRates{
		StateRate:   e.stateRate(c),
		FedLTCGRate: e.ltcgRate(c),
	}
}

func (e *Engine) stateRate(c Client) float64 {
	if c.StateRateOverride != nil {
		return *c.StateRateOverride
	}
	if rate, ok := e.cfg.StateRates[c.StateCode]; ok {
		return rate
	}
	return e.cfg.DefaultStateRate
}

// ltcgRate applies the simplified two-tier model: the top LTCG rate once the
// client's ordinary bracket exceeds the cutoff, the base rate otherwise.
// This intentionally collapses the real multi-bracket LTCG schedule.
func (e *Engine) ltcgRate(c Client) float64 {
	if c.LTCGRateOverride != nil {
		return *c.LTCGRateOverride
	}
	if c.FederalBracket > e.cfg.LTCGBracketCutoff {
		return e.cfg.LTCGTopRate
	}
	return e.cfg.LTCGBaseRate
}
