package engine

import (
	"math"
	"testing"
	"time"
)

func rsuGrant() Grant {
	return Grant{
		ID:             "g-rsu",
		Type:           GrantTypeRSU,
		Ticker:         "ACME",
		Price:          100,
		GrantDate:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalShares:    1600,
		VestingVariant: VestingQuarterly,
	}
}

func isoGrant() Grant {
	return Grant{
		ID:             "g-iso",
		Type:           GrantTypeISO,
		Ticker:         "ACME",
		Price:          50,
		Strike:         floatPtr(10),
		GrantDate:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalShares:    1000,
		VestingVariant: VestingCliff1Yr,
	}
}

func TestSchedule_CliffShape(t *testing.T) {
	e := newTestEngine()
	g := isoGrant()
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	events := mustSchedule(t, e, g, caClient(), false, asOf)

	if len(events) != 13 {
		t.Fatalf("cliff schedule should have 13 events, got %d", len(events))
	}

	wantFirst := g.GrantDate.AddDate(1, 0, 0)
	if !events[0].Date.Equal(wantFirst) {
		t.Errorf("first event at %v, want grant date + 12 months (%v)", events[0].Date, wantFirst)
	}
	if math.Abs(events[0].Shares-g.TotalShares*0.25) > floatTolerance {
		t.Errorf("cliff event shares = %v, want 25%% of total", events[0].Shares)
	}

	for i := 1; i < len(events); i++ {
		if math.Abs(events[i].Shares-g.TotalShares*0.0625) > floatTolerance {
			t.Errorf("event %d shares = %v, want 6.25%% of total", i, events[i].Shares)
		}
		wantDate := events[i-1].Date.AddDate(0, 3, 0)
		if !events[i].Date.Equal(wantDate) {
			t.Errorf("event %d at %v, want 3 months after previous (%v)", i, events[i].Date, wantDate)
		}
	}
}

func TestSchedule_QuarterlyShape(t *testing.T) {
	e := newTestEngine()
	g := rsuGrant()
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	events := mustSchedule(t, e, g, caClient(), false, asOf)

	if len(events) != 16 {
		t.Fatalf("quarterly schedule should have 16 events, got %d", len(events))
	}
	wantFirst := g.GrantDate.AddDate(0, 3, 0)
	if !events[0].Date.Equal(wantFirst) {
		t.Errorf("first event at %v, want grant date + 3 months (%v)", events[0].Date, wantFirst)
	}
	for i, ev := range events {
		if math.Abs(ev.Shares-g.TotalShares*0.0625) > floatTolerance {
			t.Errorf("event %d shares = %v, want 6.25%% of total", i, ev.Shares)
		}
	}
}

func TestSchedule_SharesSumToTotal(t *testing.T) {
	e := newTestEngine()
	asOf := time.Now()

	grants := []Grant{rsuGrant(), isoGrant()}
	// Awkward share counts that do not divide evenly by 16
	grants = append(grants, Grant{
		ID: "g-odd", Type: GrantTypeRSU, Price: 37.5,
		GrantDate: time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC), TotalShares: 1337,
		VestingVariant: VestingCliff1Yr,
	})

	for _, g := range grants {
		events := mustSchedule(t, e, g, caClient(), false, asOf)
		var sum float64
		for _, ev := range events {
			sum += ev.Shares
		}
		if math.Abs(sum-g.TotalShares) > floatTolerance {
			t.Errorf("grant %s: event shares sum to %v, want %v", g.ID, sum, g.TotalShares)
		}
	}
}

func TestSchedule_SortedAscendingAndPastFlag(t *testing.T) {
	e := newTestEngine()
	g := rsuGrant()
	asOf := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	events := mustSchedule(t, e, g, caClient(), false, asOf)

	for i := 1; i < len(events); i++ {
		if events[i].Date.Before(events[i-1].Date) {
			t.Fatalf("events not sorted ascending at index %d", i)
		}
	}
	for _, ev := range events {
		wantPast := ev.Date.Before(asOf)
		if ev.Past != wantPast {
			t.Errorf("event %v: past = %v, want %v", ev.Date, ev.Past, wantPast)
		}
	}
}

func TestSchedule_RSUSellToCover(t *testing.T) {
	e := newTestEngine()
	g := rsuGrant() // 1600 shares at $100, quarterly: each tranche 100 shares, $10,000 gross

	events := mustSchedule(t, e, g, caClient(), false, time.Now())
	ev := events[0]

	assertMoney(t, 10000, ev.GrossValue, "gross value")
	assertMoney(t, 0.22, ev.WithholdingRate, "default withholding rate")
	assertMoney(t, 2200, ev.Withholding, "withholding at 22%")
	// liability: 37% federal + 14.4% state on $10,000
	assertMoney(t, 3700, ev.Tax.FederalAmount, "federal liability")
	assertMoney(t, 1440, ev.Tax.StateAmount, "state liability")
	assertMoney(t, 5140, ev.Tax.Total, "total liability")
	assertMoney(t, 2940, ev.TaxGap, "tax gap = liability - withholding")
	assertMoney(t, 22, ev.SharesSoldToCover, "shares sold to cover = withholding / price")
	assertMoney(t, 78, ev.NetShares, "net shares")
	assertMoney(t, 7800, ev.NetValue, "net value")
	if ev.AMTExposure != 0 {
		t.Errorf("RSU vesting has no AMT exposure, got %v", ev.AMTExposure)
	}
}

func TestSchedule_RSUElectedWithholdingRate(t *testing.T) {
	e := newTestEngine()
	g := rsuGrant()
	g.WithholdingRate = floatPtr(0.37)

	events := mustSchedule(t, e, g, caClient(), false, time.Now())
	ev := events[0]

	assertMoney(t, 3700, ev.Withholding, "withholding at elected 37%")
	// federal covered exactly, state still outstanding
	assertMoney(t, 1440, ev.TaxGap, "tax gap with elected rate")
}

func TestSchedule_RSUSimulateSellAll(t *testing.T) {
	e := newTestEngine()
	g := rsuGrant()

	events := mustSchedule(t, e, g, caClient(), true, time.Now())
	ev := events[0]

	if ev.NetShares != 0 {
		t.Errorf("sell-all should leave no net shares, got %v", ev.NetShares)
	}
	assertMoney(t, 100, ev.SharesSoldToCover, "entire tranche liquidated")
	assertMoney(t, 7800, ev.NetValue, "net value = gross - withholding")
}

func TestSchedule_RSUZeroPrice(t *testing.T) {
	e := newTestEngine()
	g := rsuGrant()
	g.Price = 0 // private company with no priced round yet

	events := mustSchedule(t, e, g, caClient(), false, time.Now())
	for _, ev := range events {
		if ev.SharesSoldToCover != 0 {
			t.Errorf("cover shares must not be computed at zero price, got %v", ev.SharesSoldToCover)
		}
		if math.IsNaN(ev.NetValue) || math.IsInf(ev.NetValue, 0) {
			t.Errorf("net value must stay finite at zero price, got %v", ev.NetValue)
		}
	}
}

func TestSchedule_ISOVestingIsNotTaxable(t *testing.T) {
	e := newTestEngine()
	g := isoGrant() // FMV $50, strike $10

	events := mustSchedule(t, e, g, caClient(), false, time.Now())

	cliff := events[0]
	// informational spread only: (50 - 10) * 250 shares
	assertMoney(t, 10000, cliff.GrossValue, "informational bargain spread")

	for i, ev := range events {
		if ev.Withholding != 0 || ev.TaxGap != 0 || ev.AMTExposure != 0 || ev.Tax.Total != 0 {
			t.Errorf("event %d: ISO vesting must carry no withholding, tax gap, or AMT exposure", i)
		}
		if math.Abs(ev.NetShares-ev.Shares) > floatTolerance {
			t.Errorf("event %d: all ISO shares are retained at vest", i)
		}
	}
}
