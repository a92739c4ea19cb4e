package engine

import (
	"math"
	"time"
)

// GrantStatus partitions a grant's shares at asOf into vested/unvested using
// the generated schedule, sums planned exercises recorded against the grant,
// and derives the shares still available to exercise. Available is clamped at
// zero: exercises exceeding tracked vesting are a caller error, not a reason
// to report a negative count.
func (e *Engine) GrantStatus(g Grant, exercises []PlannedExercise, c Client, asOf time.Time) (GrantStatus, error) {
	events, err := e.GenerateVestingSchedule(g, c, false, asOf)
	if err != nil {
		return GrantStatus{}, err
	}

	status := GrantStatus{Total: g.TotalShares}
	for _, ev := range events {
		if ev.Date.Before(asOf) {
			status.Vested += ev.Shares
		} else {
			status.Unvested += ev.Shares
		}
	}
	for _, ex := range exercises {
		if ex.GrantID == g.ID {
			status.Exercised += ex.Shares
		}
	}
	status.Available = math.Max(0, status.Vested-status.Exercised)
	return status, nil
}
