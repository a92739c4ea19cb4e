package engine

import (
	"errors"
	"math"
	"testing"
	"time"
)

// shared fixtures and helpers for the engine tests

const floatTolerance = 1e-6

// money comparisons allow a cent of float drift
const moneyTolerance = 0.01

func assertMoney(t *testing.T, want, got float64, description string) {
	t.Helper()
	if math.Abs(want-got) > moneyTolerance {
		t.Errorf("%s: expected %.2f, got %.2f (diff %.4f)", description, want, got, got-want)
	}
}

func floatPtr(v float64) *float64 { return &v }

func newTestEngine() *Engine {
	return NewEngine(DefaultTaxYearConfig())
}

// caClient is the fixture most tests share: 37% bracket, married filing
// jointly, California, no overrides.
func caClient() Client {
	return Client{
		FilingStatus:   FilingMarriedJoint,
		FederalBracket: 37,
		StateCode:      "CA",
	}
}

func mustSchedule(t *testing.T, e *Engine, g Grant, c Client, sellAll bool, asOf time.Time) []VestingEvent {
	t.Helper()
	events, err := e.GenerateVestingSchedule(g, c, sellAll, asOf)
	if err != nil {
		t.Fatalf("GenerateVestingSchedule: %v", err)
	}
	return events
}

func TestValidateClient(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name    string
		client  Client
		wantErr bool
	}{
		{"valid single", Client{FilingStatus: FilingSingle, FederalBracket: 24, StateCode: "TX"}, false},
		{"valid married", caClient(), false},
		{"bracket over 100", Client{FilingStatus: FilingSingle, FederalBracket: 101}, true},
		{"negative bracket", Client{FilingStatus: FilingSingle, FederalBracket: -1}, true},
		{"unknown filing status", Client{FilingStatus: "head_of_household", FederalBracket: 24}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := e.validateClient(tc.client)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateClient(%+v) err = %v, wantErr %v", tc.client, err, tc.wantErr)
			}
		})
	}
}

func TestValidateGrant_ISORequiresStrike(t *testing.T) {
	e := newTestEngine()

	g := Grant{
		Type:           GrantTypeISO,
		Price:          50,
		GrantDate:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalShares:    1000,
		VestingVariant: VestingQuarterly,
	}

	err := e.validateGrant(g)
	var vErr *ValidationError
	if err == nil {
		t.Fatal("expected a validation error for ISO grant without strike")
	}
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if vErr.Field != "strike_price" {
		t.Errorf("expected field strike_price, got %q", vErr.Field)
	}

	g.Strike = floatPtr(10)
	if err := e.validateGrant(g); err != nil {
		t.Errorf("ISO grant with strike should validate, got %v", err)
	}
}

func TestValidateGrant_Shares(t *testing.T) {
	e := newTestEngine()
	g := Grant{
		Type:           GrantTypeRSU,
		Price:          100,
		GrantDate:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalShares:    0,
		VestingVariant: VestingCliff1Yr,
	}
	if err := e.validateGrant(g); err == nil {
		t.Error("expected a validation error for zero total shares")
	}
	g.TotalShares = -100
	if err := e.validateGrant(g); err == nil {
		t.Error("expected a validation error for negative total shares")
	}
}
