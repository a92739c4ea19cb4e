package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fra890/equity-compass/internal/engine"
)

// ExportService renders engine projections into downloadable files. It is a
// presentation layer over ProjectionService and holds no state of its own.
type ExportService interface {
	WriteVestingScheduleCSV(ctx context.Context, w io.Writer, clientID, grantID string, sellAll bool) error
}

type exportService struct {
	projections ProjectionService
}

func NewExportService(projections ProjectionService) ExportService {
	return &exportService{projections: projections}
}

var vestingCSVHeader = []string{
	"date",
	"shares",
	"gross_value",
	"withholding_rate",
	"withholding",
	"shares_sold_to_cover",
	"net_shares",
	"net_value",
	"federal_tax",
	"state_tax",
	"total_tax",
	"tax_gap",
	"amt_exposure",
	"vested",
}

func (s *exportService) WriteVestingScheduleCSV(ctx context.Context, w io.Writer, clientID, grantID string, sellAll bool) error {
	events, err := s.projections.GetVestingSchedule(ctx, clientID, grantID, sellAll)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(vestingCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, ev := range events {
		if err := cw.Write(vestingCSVRow(ev)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func vestingCSVRow(ev engine.VestingEvent) []string {
	return []string{
		ev.Date.Format("2006-01-02"),
		money(ev.Shares),
		money(ev.GrossValue),
		strconv.FormatFloat(ev.WithholdingRate, 'f', 4, 64),
		money(ev.Withholding),
		money(ev.SharesSoldToCover),
		money(ev.NetShares),
		money(ev.NetValue),
		money(ev.Tax.FederalAmount),
		money(ev.Tax.StateAmount),
		money(ev.Tax.Total),
		money(ev.TaxGap),
		money(ev.AMTExposure),
		strconv.FormatBool(ev.Past),
	}
}

// money formats a dollar or share amount with two decimal places, the
// precision the schedule is quoted at.
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
