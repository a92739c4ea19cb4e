package engine

import (
	"math"
	"sort"
	"time"
)

// GenerateVestingSchedule expands a grant into its chronological sequence of
// vesting events, each annotated with gross value, withholding, net
// shares/value and tax gap (RSU) or informational spread (ISO). The result is
// sorted ascending by date; the Past flag is recomputed against asOf on every
// call. When sellAll is set, RSU tranches are modeled as fully liquidated at
// vest instead of sell-to-cover.
func (e *Engine) GenerateVestingSchedule(g Grant, c Client, sellAll bool, asOf time.Time) ([]VestingEvent, error) {
	if err := e.validateGrant(g); err != nil {
		return nil, err
	}
	if err := e.validateClient(c); err != nil {
		return nil, err
	}

	events := expandTranches(g)
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })

	rates := e.EffectiveRates(c)
	for i := range events {
		switch g.Type {
		case GrantTypeRSU:
			e.priceRSUEvent(&events[i], g, c, rates, sellAll)
		case GrantTypeISO:
			priceISOEvent(&events[i], g)
		}
		events[i].Past = events[i].Date.Before(asOf)
	}
	return events, nil
}

// expandTranches lays out the raw date/share tranches for a grant's variant.
func expandTranches(g Grant) []VestingEvent {
	var events []VestingEvent
	switch g.VestingVariant {
	case VestingCliff1Yr:
		// 25% cliff at one year, then the remaining 75% over 12 quarters.
		events = append(events, VestingEvent{
			Date:   g.GrantDate.AddDate(1, 0, 0),
			Shares: g.TotalShares * 0.25,
		})
		for q := 1; q <= 12; q++ {
			events = append(events, VestingEvent{
				Date:   g.GrantDate.AddDate(1, 3*q, 0),
				Shares: g.TotalShares * 0.0625,
			})
		}
	case VestingQuarterly:
		for q := 1; q <= 16; q++ {
			events = append(events, VestingEvent{
				Date:   g.GrantDate.AddDate(0, 3*q, 0),
				Shares: g.TotalShares * 0.0625,
			})
		}
	}
	return events
}

// priceRSUEvent fills in the taxable-at-vest economics of an RSU tranche.
func (e *Engine) priceRSUEvent(ev *VestingEvent, g Grant, c Client, rates EffectiveRates, sellAll bool) {
	ev.GrossValue = ev.Shares * g.Price

	ev.WithholdingRate = e.cfg.DefaultWithholdingRate
	if g.WithholdingRate != nil {
		ev.WithholdingRate = *g.WithholdingRate
	}
	ev.Withholding = ev.GrossValue * ev.WithholdingRate

	fedRate := c.FederalBracket / 100
	ev.Tax = TaxBreakdown{
		FederalRate:   fedRate,
		FederalAmount: ev.GrossValue * fedRate,
		StateRate:     rates.StateRate,
		StateAmount:   ev.GrossValue * rates.StateRate,
		// NIIT does not apply to compensation income at vest.
		NIITRate: e.cfg.NIITRate,
	}
	ev.Tax.Total = ev.Tax.FederalAmount + ev.Tax.StateAmount

	ev.TaxGap = math.Max(0, ev.Tax.Total-ev.Withholding)

	if sellAll {
		ev.SharesSoldToCover = ev.Shares
		ev.NetShares = 0
		ev.NetValue = ev.GrossValue - ev.Withholding
		return
	}

	// Sell-to-cover: notionally sell just enough shares to fund withholding.
	// A zero price means cover shares cannot be computed; gross and
	// withholding are zero in that case too, so the tranche stays whole.
	if g.Price > 0 {
		ev.SharesSoldToCover = ev.Withholding / g.Price
	}
	ev.NetShares = ev.Shares - ev.SharesSoldToCover
	ev.NetValue = ev.NetShares * g.Price
}

// priceISOEvent fills in an ISO tranche. Vesting is never an ISO taxable
// event: gross value is only the informational bargain spread, and
// withholding, tax gap, and AMT exposure stay zero. AMT exposure arises from
// an actual exercise, which is modeled by PlannedExercise and the
// disposition comparison.
func priceISOEvent(ev *VestingEvent, g Grant) {
	ev.GrossValue = (g.Price - *g.Strike) * ev.Shares
	ev.NetShares = ev.Shares
	ev.NetValue = ev.GrossValue
}
