package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fra890/equity-compass/internal/engine"
	"github.com/fra890/equity-compass/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type ISOScenarioRequest struct {
	Shares        float64 `json:"shares" binding:"required,gt=0"`
	StrikePrice   float64 `json:"strike_price" binding:"gte=0"`
	FMVAtExercise float64 `json:"fmv_at_exercise" binding:"gte=0"`
	SalePrice     float64 `json:"sale_price" binding:"gte=0"`
}

type ISOScenarioComparison struct {
	Qualified    engine.ISOScenario `json:"qualified"`
	Disqualified engine.ISOScenario `json:"disqualified"`
	HoldingBonus float64            `json:"holding_bonus"` // qualified net minus disqualified net
}

// --- Interface ---

// ProjectionService is the read-only façade over the calculation engine: it
// loads persisted client data, maps it to engine inputs, and runs the pure
// projections. It never writes.
type ProjectionService interface {
	GetVestingSchedule(ctx context.Context, clientID, grantID string, sellAll bool) ([]engine.VestingEvent, error)
	GetGrantStatus(ctx context.Context, clientID, grantID string) (engine.GrantStatus, error)
	GetAMTRoom(ctx context.Context, clientID string) (engine.AMTRoomReport, error)
	GetEffectiveRates(ctx context.Context, clientID string) (engine.EffectiveRates, error)
	CompareISOScenarios(ctx context.Context, clientID string, req ISOScenarioRequest) (ISOScenarioComparison, error)
}

type projectionService struct {
	clientRepo repository.ClientRepository
	eng        *engine.Engine
	now        func() time.Time
}

func NewProjectionService(clientRepo repository.ClientRepository, eng *engine.Engine) ProjectionService {
	return &projectionService{clientRepo: clientRepo, eng: eng, now: time.Now}
}

// --- Implementation ---

func (s *projectionService) GetVestingSchedule(ctx context.Context, clientID, grantID string, sellAll bool) ([]engine.VestingEvent, error) {
	client, grant, err := s.loadClientGrant(ctx, clientID, grantID)
	if err != nil {
		return nil, err
	}

	events, err := s.eng.GenerateVestingSchedule(*grant, client, sellAll, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate vesting schedule: %w", err)
	}
	return events, nil
}

func (s *projectionService) GetGrantStatus(ctx context.Context, clientID, grantID string) (engine.GrantStatus, error) {
	client, grant, err := s.loadClientGrant(ctx, clientID, grantID)
	if err != nil {
		return engine.GrantStatus{}, err
	}

	status, err := s.eng.GrantStatus(*grant, client.Exercises, client, s.now())
	if err != nil {
		return engine.GrantStatus{}, fmt.Errorf("failed to compute grant status: %w", err)
	}
	return status, nil
}

func (s *projectionService) GetAMTRoom(ctx context.Context, clientID string) (engine.AMTRoomReport, error) {
	client, err := s.loadClient(ctx, clientID)
	if err != nil {
		return engine.AMTRoomReport{}, err
	}

	report, err := s.eng.AMTRoom(client, s.now())
	if err != nil {
		return engine.AMTRoomReport{}, fmt.Errorf("failed to estimate AMT room: %w", err)
	}
	return report, nil
}

func (s *projectionService) GetEffectiveRates(ctx context.Context, clientID string) (engine.EffectiveRates, error) {
	client, err := s.loadClient(ctx, clientID)
	if err != nil {
		return engine.EffectiveRates{}, err
	}
	return s.eng.EffectiveRates(client), nil
}

func (s *projectionService) CompareISOScenarios(ctx context.Context, clientID string, req ISOScenarioRequest) (ISOScenarioComparison, error) {
	client, err := s.loadClient(ctx, clientID)
	if err != nil {
		return ISOScenarioComparison{}, err
	}

	in := engine.DispositionInput{
		Shares:        req.Shares,
		Strike:        req.StrikePrice,
		FMVAtExercise: req.FMVAtExercise,
		SalePrice:     req.SalePrice,
	}
	qualified, disqualified, err := s.eng.CompareDisposition(in, client)
	if err != nil {
		return ISOScenarioComparison{}, fmt.Errorf("failed to compare ISO scenarios: %w", err)
	}

	return ISOScenarioComparison{
		Qualified:    qualified,
		Disqualified: disqualified,
		HoldingBonus: qualified.NetProfit - disqualified.NetProfit,
	}, nil
}

// --- Helpers ---

func (s *projectionService) loadClient(ctx context.Context, clientID string) (engine.Client, error) {
	uid, err := uuid.Parse(clientID)
	if err != nil {
		return engine.Client{}, fmt.Errorf("invalid client id: %w", err)
	}

	client, err := s.clientRepo.FindByID(ctx, uid)
	if err != nil {
		return engine.Client{}, fmt.Errorf("client not found: %w", err)
	}
	return toEngineClient(client), nil
}

func (s *projectionService) loadClientGrant(ctx context.Context, clientID, grantID string) (engine.Client, *engine.Grant, error) {
	client, err := s.loadClient(ctx, clientID)
	if err != nil {
		return engine.Client{}, nil, err
	}
	for i := range client.Grants {
		if client.Grants[i].ID == grantID {
			return client, &client.Grants[i], nil
		}
	}
	return engine.Client{}, nil, fmt.Errorf("grant %s not found for client", grantID)
}
