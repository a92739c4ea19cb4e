package engine

import (
	"testing"
	"time"
)

func TestGrantStatus_Partition(t *testing.T) {
	e := newTestEngine()
	g := isoGrant() // cliff variant, 1000 shares, granted 2024-01-15
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// vested by 2025-06-01: 25% cliff (2025-01-15) + one quarterly tranche (2025-04-15)
	status, err := e.GrantStatus(g, nil, caClient(), asOf)
	if err != nil {
		t.Fatalf("GrantStatus: %v", err)
	}

	assertMoney(t, 1000, status.Total, "total")
	assertMoney(t, 312.5, status.Vested, "vested")
	assertMoney(t, 687.5, status.Unvested, "unvested")
	assertMoney(t, 0, status.Exercised, "exercised with no planned exercises")
	assertMoney(t, 312.5, status.Available, "available")
}

func TestGrantStatus_ExercisedAndAvailable(t *testing.T) {
	e := newTestEngine()
	g := isoGrant()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	exercises := []PlannedExercise{
		{GrantID: g.ID, Shares: 100},
		{GrantID: "some-other-grant", Shares: 9999}, // must be ignored
	}

	status, err := e.GrantStatus(g, exercises, caClient(), asOf)
	if err != nil {
		t.Fatalf("GrantStatus: %v", err)
	}
	assertMoney(t, 100, status.Exercised, "exercised sums only matching grant id")
	assertMoney(t, 212.5, status.Available, "available = vested - exercised")
}

func TestGrantStatus_AvailableNeverNegative(t *testing.T) {
	e := newTestEngine()
	g := isoGrant()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// exercises exceeding tracked vesting: defensive clamp, not an error
	exercises := []PlannedExercise{{GrantID: g.ID, Shares: 5000}}

	status, err := e.GrantStatus(g, exercises, caClient(), asOf)
	if err != nil {
		t.Fatalf("GrantStatus: %v", err)
	}
	if status.Available != 0 {
		t.Errorf("available = %v, must clamp at zero", status.Available)
	}
}

func TestGrantStatus_BeforeAnyVesting(t *testing.T) {
	e := newTestEngine()
	g := isoGrant()
	asOf := g.GrantDate.AddDate(0, 1, 0)

	status, err := e.GrantStatus(g, nil, caClient(), asOf)
	if err != nil {
		t.Fatalf("GrantStatus: %v", err)
	}
	assertMoney(t, 0, status.Vested, "nothing vested one month in")
	assertMoney(t, 1000, status.Unvested, "everything unvested")
}
