package engine

import (
	"math"
	"testing"
	"time"
)

func TestAMTRoom_KnownClient(t *testing.T) {
	e := newTestEngine()
	asOf := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	c := caClient()
	c.EstimatedIncome = floatPtr(250000)

	report, err := e.AMTRoom(c, asOf)
	if err != nil {
		t.Fatalf("AMTRoom: %v", err)
	}

	assertMoney(t, 250000, report.BaseIncome, "base income")
	assertMoney(t, 0, report.ProjectedRSUIncome, "no RSU grants")
	assertMoney(t, 36000, report.EstimatedStateTax, "state tax at 14.4%")
	if !report.IsItemizing {
		t.Error("36,000 SALT beats the 29,200 standard deduction, should itemize")
	}
	assertMoney(t, 36000, report.EffectiveDeduction, "effective deduction")
	assertMoney(t, 8100, report.PersonalExemptions, "two personal exemptions")
	// regular taxable 205,900 -> 35,501 (see bracket tests)
	assertMoney(t, 35501, report.RegularTax, "regular tax")
	// TMT(amti) = (250000 + spread - 133300) * 0.26 crosses 35,501 at spread 20,000
	assertMoney(t, 19000, report.Room, "last spread confirmed safe")
	if report.Indeterminate {
		t.Error("breakeven was found, report must not be indeterminate")
	}
}

func TestAMTRoom_BreakevenInvariants(t *testing.T) {
	e := newTestEngine()
	asOf := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	step := e.Config().AMTSearchStep

	clients := []Client{
		{FilingStatus: FilingSingle, FederalBracket: 32, StateCode: "NY", EstimatedIncome: floatPtr(400000)},
		{FilingStatus: FilingMarriedJoint, FederalBracket: 24, StateCode: "TX", EstimatedIncome: floatPtr(180000)},
		{FilingStatus: FilingMarriedJoint, FederalBracket: 37, StateCode: "CA", EstimatedIncome: floatPtr(750000)},
	}

	for _, c := range clients {
		report, err := e.AMTRoom(c, asOf)
		if err != nil {
			t.Fatalf("AMTRoom(%s/%s): %v", c.FilingStatus, c.StateCode, err)
		}
		if report.Indeterminate {
			t.Fatalf("%s/%s: unexpected indeterminate result", c.FilingStatus, c.StateCode)
		}
		if report.Room < 0 {
			t.Errorf("room must be non-negative, got %v", report.Room)
		}
		if rem := math.Mod(report.Room, step); rem > floatTolerance && step-rem > floatTolerance {
			t.Errorf("room %v is not a multiple of the search step", report.Room)
		}

		base := report.BaseIncome + report.ProjectedRSUIncome
		// at Room the client is still safe (unless AMT already binds at zero
		// spread), one step further AMT binds
		if report.Room > 0 {
			if tmt := e.tentativeMinimumTax(base+report.Room, c.FilingStatus); tmt > report.RegularTax {
				t.Errorf("TMT at room (%v) exceeds regular tax (%v)", tmt, report.RegularTax)
			}
		}
		if tmt := e.tentativeMinimumTax(base+report.Room+2*step, c.FilingStatus); tmt <= report.RegularTax {
			t.Errorf("TMT two steps past room (%v) should exceed regular tax (%v)", tmt, report.RegularTax)
		}
	}
}

func TestAMTRoom_IndeterminateAtCap(t *testing.T) {
	e := newTestEngine()
	asOf := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	// Regular tax on a billion dollars dwarfs TMT even at the search cap, so
	// no breakeven exists within bounds.
	c := caClient()
	c.EstimatedIncome = floatPtr(1e9)

	report, err := e.AMTRoom(c, asOf)
	if err != nil {
		t.Fatalf("AMTRoom: %v", err)
	}
	if !report.Indeterminate {
		t.Fatal("expected an indeterminate result at the search cap")
	}
	assertMoney(t, e.Config().AMTSearchCap, report.Room, "room pinned to the cap")
}

func TestAMTRoom_IncludesRSUVestingIncome(t *testing.T) {
	e := newTestEngine()
	asOf := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	c := caClient()
	c.EstimatedIncome = floatPtr(250000)
	c.Grants = []Grant{rsuGrant()} // granted 2024-01-15, quarterly, $10k per tranche

	report, err := e.AMTRoom(c, asOf)
	if err != nil {
		t.Fatalf("AMTRoom: %v", err)
	}
	// tranches landing in 2025: months 15,18,21,24 after grant -> 4 events
	assertMoney(t, 40000, report.ProjectedRSUIncome, "RSU income in evaluation year")

	// More current-year income means less AMT headroom.
	bare := caClient()
	bare.EstimatedIncome = floatPtr(250000)
	baseline, err := e.AMTRoom(bare, asOf)
	if err != nil {
		t.Fatalf("AMTRoom baseline: %v", err)
	}
	if report.Room >= baseline.Room {
		t.Errorf("room with RSU income (%v) should be below baseline (%v)", report.Room, baseline.Room)
	}
}

func TestAMTRoom_DefaultEstimatedIncome(t *testing.T) {
	e := newTestEngine()
	asOf := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	c := caClient() // no estimated income on file
	report, err := e.AMTRoom(c, asOf)
	if err != nil {
		t.Fatalf("AMTRoom: %v", err)
	}
	assertMoney(t, e.Config().DefaultEstimatedIncome, report.BaseIncome, "default base income")
}

func TestTentativeMinimumTax_TwoTier(t *testing.T) {
	e := newTestEngine()
	cfg := e.Config()

	// below the exemption nothing is owed
	if tmt := e.tentativeMinimumTax(100000, FilingMarriedJoint); tmt != 0 {
		t.Errorf("TMT below exemption = %v, want 0", tmt)
	}

	// inside the 26% tier
	amti := 300000.0
	want := (amti - cfg.AMTExemption[FilingMarriedJoint]) * cfg.AMTLowRate
	assertMoney(t, want, e.tentativeMinimumTax(amti, FilingMarriedJoint), "26% tier")

	// above the threshold the marginal rate steps to 28%
	lo := e.tentativeMinimumTax(500000, FilingMarriedJoint)
	hi := e.tentativeMinimumTax(501000, FilingMarriedJoint)
	assertMoney(t, 280, hi-lo, "marginal 28% above the rate threshold")
}

func TestTentativeMinimumTax_ExemptionPhaseout(t *testing.T) {
	e := newTestEngine()
	cfg := e.Config()

	threshold := cfg.AMTPhaseoutThreshold[FilingSingle]
	// 100,000 over the threshold claws back 25,000 of exemption
	over := threshold + 100000
	exemption := cfg.AMTExemption[FilingSingle] - 25000
	base := over - exemption

	want := cfg.AMTRateThreshold*cfg.AMTLowRate + (base-cfg.AMTRateThreshold)*cfg.AMTHighRate
	assertMoney(t, want, e.tentativeMinimumTax(over, FilingSingle), "phased-out exemption")
}
