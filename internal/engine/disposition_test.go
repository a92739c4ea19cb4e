package engine

import (
	"testing"
)

// Worked example: 1,000 ISO shares, $10 strike, $50 FMV at exercise,
// 37% bracket, married filing jointly, California.

func TestDisposition_Qualified(t *testing.T) {
	e := newTestEngine()

	in := DispositionInput{Shares: 1000, Strike: 10, FMVAtExercise: 50, SalePrice: 100}
	s, err := e.DispositionScenario(in, caClient(), true)
	if err != nil {
		t.Fatalf("DispositionScenario: %v", err)
	}

	assertMoney(t, 10000, s.ExerciseCost, "exercise cost")
	assertMoney(t, 100000, s.SaleProceeds, "sale proceeds")
	assertMoney(t, 90000, s.CapitalGain, "capital gain")
	assertMoney(t, 0, s.OrdinaryIncome, "no ordinary income on a qualified sale")
	assertMoney(t, 18000, s.Tax.FederalAmount, "LTCG at 20% (bracket > 33)")
	assertMoney(t, 3420, s.Tax.NIITAmount, "NIIT at 3.8%")
	assertMoney(t, 12960, s.Tax.StateAmount, "state at 14.4%")
	assertMoney(t, 34380, s.Tax.Total, "total tax")
	assertMoney(t, 55620, s.NetProfit, "net profit")
	// the full spread stays an AMT preference item in the exercise year
	assertMoney(t, 40000, s.AMTPreference, "AMT preference")
}

func TestDisposition_DisqualifiedImmediateSale(t *testing.T) {
	e := newTestEngine()

	in := DispositionInput{Shares: 1000, Strike: 10, FMVAtExercise: 50, SalePrice: 50}
	s, err := e.DispositionScenario(in, caClient(), false)
	if err != nil {
		t.Fatalf("DispositionScenario: %v", err)
	}

	assertMoney(t, 50000, s.SaleProceeds, "sale proceeds")
	assertMoney(t, 40000, s.OrdinaryIncome, "bargain element as ordinary income")
	assertMoney(t, 0, s.CapitalGain, "no gain beyond exercise-date FMV")
	assertMoney(t, 14800, s.Tax.FederalAmount, "ordinary federal at 37%")
	assertMoney(t, 5760, s.Tax.StateAmount, "state at 14.4%")
	assertMoney(t, 0, s.Tax.NIITAmount, "no NIIT without capital gain")
	assertMoney(t, 20560, s.Tax.Total, "total tax")
	assertMoney(t, 19440, s.NetProfit, "net profit")
	assertMoney(t, 0, s.AMTPreference, "disqualifying sale eliminates the AMT preference")
}

func TestDisposition_DisqualifiedWithExcessGain(t *testing.T) {
	e := newTestEngine()

	// sold above exercise-date FMV: the excess is capital gain on top of the
	// ordinary-income bargain element
	in := DispositionInput{Shares: 1000, Strike: 10, FMVAtExercise: 50, SalePrice: 80}
	s, err := e.DispositionScenario(in, caClient(), false)
	if err != nil {
		t.Fatalf("DispositionScenario: %v", err)
	}

	assertMoney(t, 40000, s.OrdinaryIncome, "bargain element")
	assertMoney(t, 30000, s.CapitalGain, "gain above exercise-date FMV")
	// 40000*0.37 + 30000*0.20
	assertMoney(t, 20800, s.Tax.FederalAmount, "federal: ordinary + LTCG components")
	assertMoney(t, 30000*0.038, s.Tax.NIITAmount, "NIIT on the capital gain only")
	assertMoney(t, 70000*0.144, s.Tax.StateAmount, "state on ordinary + gain")
}

func TestDisposition_DisqualifiedSaleBelowFMV(t *testing.T) {
	e := newTestEngine()

	// sold between strike and exercise-date FMV: ordinary income is capped by
	// the actual gain, no capital gain
	in := DispositionInput{Shares: 1000, Strike: 10, FMVAtExercise: 50, SalePrice: 30}
	s, err := e.DispositionScenario(in, caClient(), false)
	if err != nil {
		t.Fatalf("DispositionScenario: %v", err)
	}

	assertMoney(t, 20000, s.OrdinaryIncome, "ordinary income capped at actual gain")
	assertMoney(t, 0, s.CapitalGain, "no capital gain below exercise-date FMV")
}

func TestDisposition_SaleAtALoss(t *testing.T) {
	e := newTestEngine()

	in := DispositionInput{Shares: 1000, Strike: 10, FMVAtExercise: 50, SalePrice: 5}
	s, err := e.DispositionScenario(in, caClient(), false)
	if err != nil {
		t.Fatalf("DispositionScenario: %v", err)
	}

	assertMoney(t, 0, s.OrdinaryIncome, "no ordinary income on a loss")
	assertMoney(t, 0, s.Tax.Total, "no tax on a loss")
	assertMoney(t, -5000, s.NetProfit, "net loss = proceeds - cost")
}

func TestDisposition_InvalidInputs(t *testing.T) {
	e := newTestEngine()

	if _, err := e.DispositionScenario(DispositionInput{Shares: 0, Strike: 10, FMVAtExercise: 50, SalePrice: 60}, caClient(), true); err == nil {
		t.Error("expected a validation error for zero shares")
	}
	if _, err := e.DispositionScenario(DispositionInput{Shares: 100, Strike: -1, FMVAtExercise: 50, SalePrice: 60}, caClient(), true); err == nil {
		t.Error("expected a validation error for negative strike")
	}
}

func TestCompareDisposition_PairsScenarios(t *testing.T) {
	e := newTestEngine()

	in := DispositionInput{Shares: 1000, Strike: 10, FMVAtExercise: 50, SalePrice: 100}
	q, d, err := e.CompareDisposition(in, caClient())
	if err != nil {
		t.Fatalf("CompareDisposition: %v", err)
	}
	if !q.Qualified || d.Qualified {
		t.Error("scenario pair must be (qualified, disqualified)")
	}
	// holding long enough is worth real money in this example
	if q.NetProfit <= d.NetProfit {
		t.Errorf("qualified net (%v) should beat disqualified net (%v) here", q.NetProfit, d.NetProfit)
	}
}

func TestExercisePlan(t *testing.T) {
	e := newTestEngine()
	g := isoGrant() // $50 FMV, $10 strike

	cash, amt, err := e.ExercisePlan(g, 200, false)
	if err != nil {
		t.Fatalf("ExercisePlan: %v", err)
	}
	assertMoney(t, 2000, cash, "cash cost = shares x strike")
	assertMoney(t, 8000, amt, "AMT exposure = bargain element when held")

	_, amt, err = e.ExercisePlan(g, 200, true)
	if err != nil {
		t.Fatalf("ExercisePlan same-year sale: %v", err)
	}
	assertMoney(t, 0, amt, "same-year disqualifying sale carries no AMT exposure")

	if _, _, err := e.ExercisePlan(rsuGrant(), 100, false); err == nil {
		t.Error("RSU grants cannot be exercised")
	}
	if _, _, err := e.ExercisePlan(g, -5, false); err == nil {
		t.Error("expected a validation error for negative shares")
	}
}
