package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/fra890/equity-compass/internal/engine"
)

// stubProjections serves canned schedule data to the exporter.
type stubProjections struct {
	events []engine.VestingEvent
	err    error
}

func (s *stubProjections) GetVestingSchedule(ctx context.Context, clientID, grantID string, sellAll bool) ([]engine.VestingEvent, error) {
	return s.events, s.err
}

func (s *stubProjections) GetGrantStatus(ctx context.Context, clientID, grantID string) (engine.GrantStatus, error) {
	return engine.GrantStatus{}, nil
}

func (s *stubProjections) GetAMTRoom(ctx context.Context, clientID string) (engine.AMTRoomReport, error) {
	return engine.AMTRoomReport{}, nil
}

func (s *stubProjections) GetEffectiveRates(ctx context.Context, clientID string) (engine.EffectiveRates, error) {
	return engine.EffectiveRates{}, nil
}

func (s *stubProjections) CompareISOScenarios(ctx context.Context, clientID string, req ISOScenarioRequest) (ISOScenarioComparison, error) {
	return ISOScenarioComparison{}, nil
}

func TestWriteVestingScheduleCSV(t *testing.T) {
	events := []engine.VestingEvent{
		{
			Date:              time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
			Shares:            100,
			GrossValue:        10000,
			WithholdingRate:   0.22,
			Withholding:       2200,
			SharesSoldToCover: 22,
			NetShares:         78,
			NetValue:          7800,
			TaxGap:            2940,
			Past:              true,
			Tax:               engine.TaxBreakdown{FederalAmount: 3700, StateAmount: 1440, Total: 5140},
		},
		{
			Date:       time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
			Shares:     100,
			GrossValue: 10000,
		},
	}

	svc := NewExportService(&stubProjections{events: events})

	var buf bytes.Buffer
	if err := svc.WriteVestingScheduleCSV(context.Background(), &buf, "client", "grant", false); err != nil {
		t.Fatalf("WriteVestingScheduleCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	if records[0][0] != "date" || records[0][len(records[0])-1] != "vested" {
		t.Errorf("unexpected header: %v", records[0])
	}

	first := records[1]
	if first[0] != "2025-04-15" {
		t.Errorf("date column = %q", first[0])
	}
	if first[2] != "10000.00" {
		t.Errorf("gross value column = %q", first[2])
	}
	if first[3] != "0.2200" {
		t.Errorf("withholding rate column = %q", first[3])
	}
	if first[len(first)-1] != "true" {
		t.Errorf("vested column = %q", first[len(first)-1])
	}
	if records[2][len(records[2])-1] != "false" {
		t.Errorf("future tranche should not be marked vested: %v", records[2])
	}
}

func TestWriteVestingScheduleCSV_PropagatesError(t *testing.T) {
	svc := NewExportService(&stubProjections{err: context.DeadlineExceeded})

	var buf bytes.Buffer
	if err := svc.WriteVestingScheduleCSV(context.Background(), &buf, "client", "grant", false); err == nil {
		t.Error("expected the schedule error to propagate")
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written on error, got %q", buf.String())
	}
}
