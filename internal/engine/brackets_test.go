package engine

import "testing"

func TestOrdinaryIncomeTax_ZeroAndNegative(t *testing.T) {
	e := newTestEngine()

	for _, status := range []string{FilingSingle, FilingMarriedJoint} {
		if tax := e.OrdinaryIncomeTax(0, status); tax != 0 {
			t.Errorf("%s: tax(0) = %v, want 0", status, tax)
		}
		if tax := e.OrdinaryIncomeTax(-50000, status); tax != 0 {
			t.Errorf("%s: tax(-50000) = %v, want 0", status, tax)
		}
	}
}

func TestOrdinaryIncomeTax_ConcreteValues(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		status string
		income float64
		want   float64
	}{
		// single: 11600*0.10 + (47150-11600)*0.12 + (50000-47150)*0.22
		{FilingSingle, 50000, 6053},
		// married: 23200*0.10 + (94300-23200)*0.12 + (100000-94300)*0.22
		{FilingMarriedJoint, 100000, 12106},
		// married, fully inside the 10% bracket
		{FilingMarriedJoint, 20000, 2000},
		// married, into the 24% bracket:
		// 2320 + 8532 + 23485 + (205900-201050)*0.24
		{FilingMarriedJoint, 205900, 35501},
	}

	for _, tc := range tests {
		tax := e.OrdinaryIncomeTax(tc.income, tc.status)
		assertMoney(t, tc.want, tax, tc.status)
	}
}

func TestOrdinaryIncomeTax_Monotonic(t *testing.T) {
	e := newTestEngine()

	for _, status := range []string{FilingSingle, FilingMarriedJoint} {
		prev := 0.0
		for income := 0.0; income <= 2000000; income += 7331 {
			tax := e.OrdinaryIncomeTax(income, status)
			if tax < prev {
				t.Fatalf("%s: tax decreased from %v to %v at income %v", status, prev, tax, income)
			}
			prev = tax
		}
	}
}

func TestOrdinaryIncomeTax_NeverExceedsTopRate(t *testing.T) {
	e := newTestEngine()

	for income := 1000.0; income <= 5000000; income *= 3 {
		tax := e.OrdinaryIncomeTax(income, FilingSingle)
		if tax > income*0.37 {
			t.Errorf("tax(%v) = %v exceeds top marginal rate applied to all income", income, tax)
		}
	}
}
