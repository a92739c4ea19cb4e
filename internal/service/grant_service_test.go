package service

import (
	"testing"

	"github.com/fra890/equity-compass/internal/model"
)

func TestValidateGrantShape(t *testing.T) {
	tests := []struct {
		name    string
		grant   model.Grant
		wantErr bool
	}{
		{
			name:  "valid RSU",
			grant: model.Grant{Type: model.GrantTypeRSU},
		},
		{
			name:  "valid ISO",
			grant: model.Grant{Type: model.GrantTypeISO, StrikePrice: decPtr("10")},
		},
		{
			name:    "ISO without strike",
			grant:   model.Grant{Type: model.GrantTypeISO},
			wantErr: true,
		},
		{
			name:    "ISO with zero strike",
			grant:   model.Grant{Type: model.GrantTypeISO, StrikePrice: decPtr("0")},
			wantErr: true,
		},
		{
			name:    "ISO with withholding rate",
			grant:   model.Grant{Type: model.GrantTypeISO, StrikePrice: decPtr("10"), WithholdingRate: decPtr("0.22")},
			wantErr: true,
		},
		{
			name:    "RSU with strike",
			grant:   model.Grant{Type: model.GrantTypeRSU, StrikePrice: decPtr("10")},
			wantErr: true,
		},
		{
			name:    "unknown type",
			grant:   model.Grant{Type: "NSO"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateGrantShape(&tt.grant)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateGrantShape() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseWithholdingRate(t *testing.T) {
	if rate, err := parseWithholdingRate(""); err != nil || rate != nil {
		t.Errorf("empty string should map to nil, got %v, %v", rate, err)
	}
	if rate, err := parseWithholdingRate("0.37"); err != nil || rate == nil || rate.String() != "0.37" {
		t.Errorf("0.37 mapped to %v, %v", rate, err)
	}
	// Zero is a legal elected rate.
	if rate, err := parseWithholdingRate("0"); err != nil || rate == nil || !rate.IsZero() {
		t.Errorf("0 mapped to %v, %v", rate, err)
	}
	for _, bad := range []string{"1.5", "-0.1", "abc"} {
		if _, err := parseWithholdingRate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseBracket(t *testing.T) {
	if _, err := parseBracket("37"); err != nil {
		t.Errorf("37 should parse: %v", err)
	}
	for _, bad := range []string{"101", "-1", "x"} {
		if _, err := parseBracket(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseGrantDate(t *testing.T) {
	d, err := parseGrantDate("2024-01-15")
	if err != nil {
		t.Fatalf("parseGrantDate: %v", err)
	}
	if d.Year() != 2024 || d.Month() != 1 || d.Day() != 15 {
		t.Errorf("parsed %v", d)
	}
	if _, err := parseGrantDate("15/01/2024"); err == nil {
		t.Error("expected error for wrong layout")
	}
}
