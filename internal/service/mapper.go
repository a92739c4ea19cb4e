package service

import (
	"github.com/fra890/equity-compass/internal/engine"
	"github.com/fra890/equity-compass/internal/model"

	"github.com/shopspring/decimal"
)

// Conversions from persisted models to engine value types. Money columns are
// stored as decimals; the engine works in float64, so the lossy conversion
// happens exactly once, here.

func decimalPtrToFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

func toEngineClient(c *model.Client) engine.Client {
	ec := engine.Client{
		FilingStatus:      c.FilingStatus,
		FederalBracket:    c.FederalBracket.InexactFloat64(),
		StateCode:         c.StateCode,
		EstimatedIncome:   decimalPtrToFloat(c.EstimatedIncome),
		StateRateOverride: decimalPtrToFloat(c.StateRateOverride),
		LTCGRateOverride:  decimalPtrToFloat(c.LTCGRateOverride),
	}
	for _, g := range c.Grants {
		ec.Grants = append(ec.Grants, toEngineGrant(&g))
	}
	for _, ex := range c.Exercises {
		ec.Exercises = append(ec.Exercises, toEngineExercise(&ex))
	}
	return ec
}

func toEngineGrant(g *model.Grant) engine.Grant {
	return engine.Grant{
		ID:              g.ID.String(),
		Type:            g.Type,
		Ticker:          g.Ticker,
		Price:           g.SharePrice.InexactFloat64(),
		Strike:          decimalPtrToFloat(g.StrikePrice),
		GrantDate:       g.GrantDate,
		TotalShares:     g.TotalShares.InexactFloat64(),
		VestingVariant:  g.VestingVariant,
		WithholdingRate: decimalPtrToFloat(g.WithholdingRate),
	}
}

func toEngineExercise(ex *model.PlannedExercise) engine.PlannedExercise {
	return engine.PlannedExercise{
		GrantID:       ex.GrantID.String(),
		Shares:        ex.Shares.InexactFloat64(),
		ExerciseDate:  ex.ExerciseDate,
		Strike:        ex.StrikePrice.InexactFloat64(),
		FMVAtExercise: ex.FMVAtExercise.InexactFloat64(),
		CashCost:      ex.CashCost.InexactFloat64(),
		AMTExposure:   ex.AMTExposure.InexactFloat64(),
	}
}
