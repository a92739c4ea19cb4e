package engine

import "testing"

func TestEffectiveRates_StateTable(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		state string
		want  float64
	}{
		{"CA", 0.144},
		{"NY", 0.109},
		{"TX", 0},
		{"FL", 0},
		{"ZZ", 0.05}, // unknown code falls back to the catch-all, never an error
		{"", 0.05},
	}

	for _, tc := range tests {
		c := Client{FilingStatus: FilingSingle, FederalBracket: 24, StateCode: tc.state}
		got := e.EffectiveRates(c)
		assertMoney(t, tc.want, got.StateRate, "state rate for "+tc.state)
	}
}

func TestEffectiveRates_StateOverrideWins(t *testing.T) {
	e := newTestEngine()

	c := caClient()
	c.StateRateOverride = floatPtr(0.0) // zero is a valid override, not "unset"
	if got := e.EffectiveRates(c).StateRate; got != 0 {
		t.Errorf("zero override should win over table lookup, got %v", got)
	}

	c.StateRateOverride = floatPtr(0.093)
	assertMoney(t, 0.093, e.EffectiveRates(c).StateRate, "explicit override")
}

func TestEffectiveRates_LTCGTwoTier(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		bracket float64
		want    float64
	}{
		{10, 0.15},
		{24, 0.15},
		{33, 0.15}, // cutoff is exclusive
		{35, 0.20},
		{37, 0.20},
	}

	for _, tc := range tests {
		c := Client{FilingStatus: FilingSingle, FederalBracket: tc.bracket, StateCode: "CA"}
		assertMoney(t, tc.want, e.EffectiveRates(c).FedLTCGRate, "LTCG rate at bracket")
	}
}

func TestEffectiveRates_LTCGOverrideWins(t *testing.T) {
	e := newTestEngine()

	c := caClient()
	c.LTCGRateOverride = floatPtr(0.238)
	assertMoney(t, 0.238, e.EffectiveRates(c).FedLTCGRate, "LTCG override")

	c.LTCGRateOverride = floatPtr(0)
	if got := e.EffectiveRates(c).FedLTCGRate; got != 0 {
		t.Errorf("zero LTCG override should win, got %v", got)
	}
}
