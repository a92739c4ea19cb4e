package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fra890/equity-compass/internal/engine"
	"github.com/fra890/equity-compass/internal/model"
	"github.com/fra890/equity-compass/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateExerciseRequest struct {
	ClientID     string `json:"client_id" binding:"required"`
	GrantID      string `json:"grant_id" binding:"required"`
	Shares       string `json:"shares" binding:"required"`
	ExerciseDate string `json:"exercise_date" binding:"required"` // YYYY-MM-DD
	SellSameYear bool   `json:"sell_same_year"`
}

type ExerciseResponse struct {
	ID            uuid.UUID `json:"id"`
	ClientID      uuid.UUID `json:"client_id"`
	GrantID       uuid.UUID `json:"grant_id"`
	Shares        string    `json:"shares"`
	ExerciseDate  string    `json:"exercise_date"`
	StrikePrice   string    `json:"strike_price"`
	FMVAtExercise string    `json:"fmv_at_exercise"`
	CashCost      string    `json:"cash_cost"`
	AMTExposure   string    `json:"amt_exposure"`
	SellSameYear  bool      `json:"sell_same_year"`
	CreatedAt     time.Time `json:"created_at"`
}

// --- Interface ---

type ExerciseService interface {
	CreateExercise(ctx context.Context, req CreateExerciseRequest, userID string) (ExerciseResponse, error)
	DeleteExercise(ctx context.Context, id string, userID string) error
	ListExercises(ctx context.Context, clientID string) ([]ExerciseResponse, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	clientRepo   repository.ClientRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	eng          *engine.Engine
	now          func() time.Time
}

func NewExerciseService(
	exerciseRepo repository.ExerciseRepository,
	clientRepo repository.ClientRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	eng *engine.Engine,
) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		clientRepo:   clientRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		eng:          eng,
		now:          time.Now,
	}
}

// --- Implementation ---

// CreateExercise records an ISO exercise plan. Shares are capped by what the
// grant has vested and not yet exercised; cash cost and AMT exposure are
// computed by the engine from the grant's current terms and frozen on the row.
func (s *exerciseService) CreateExercise(ctx context.Context, req CreateExerciseRequest, userID string) (ExerciseResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return ExerciseResponse{}, fmt.Errorf("invalid client_id: %w", err)
	}
	grantID, err := uuid.Parse(req.GrantID)
	if err != nil {
		return ExerciseResponse{}, fmt.Errorf("invalid grant_id: %w", err)
	}
	shares, err := parsePositiveDecimal("shares", req.Shares)
	if err != nil {
		return ExerciseResponse{}, err
	}
	exerciseDate, err := time.Parse(grantDateLayout, req.ExerciseDate)
	if err != nil {
		return ExerciseResponse{}, fmt.Errorf("exercise_date must be YYYY-MM-DD: %w", err)
	}

	clientModel, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExerciseResponse{}, fmt.Errorf("client not found")
		}
		return ExerciseResponse{}, fmt.Errorf("failed to fetch client: %w", err)
	}

	var grantModel *model.Grant
	for i := range clientModel.Grants {
		if clientModel.Grants[i].ID == grantID {
			grantModel = &clientModel.Grants[i]
			break
		}
	}
	if grantModel == nil {
		return ExerciseResponse{}, fmt.Errorf("grant not found for client")
	}
	if grantModel.Type != model.GrantTypeISO {
		return ExerciseResponse{}, fmt.Errorf("only ISO grants can be exercised")
	}

	engClient := toEngineClient(clientModel)
	engGrant := toEngineGrant(grantModel)

	status, err := s.eng.GrantStatus(engGrant, engClient.Exercises, engClient, s.now())
	if err != nil {
		return ExerciseResponse{}, fmt.Errorf("failed to compute grant status: %w", err)
	}
	sharesF := shares.InexactFloat64()
	if sharesF > status.Available {
		return ExerciseResponse{}, fmt.Errorf("requested %s shares but only %.4f are vested and unexercised", shares.String(), status.Available)
	}

	cashCost, amtExposure, err := s.eng.ExercisePlan(engGrant, sharesF, req.SellSameYear)
	if err != nil {
		return ExerciseResponse{}, fmt.Errorf("failed to price exercise: %w", err)
	}

	exercise := &model.PlannedExercise{
		ClientID:      clientID,
		GrantID:       grantID,
		Shares:        shares,
		ExerciseDate:  exerciseDate,
		StrikePrice:   *grantModel.StrikePrice,
		FMVAtExercise: grantModel.SharePrice,
		CashCost:      decimal.NewFromFloat(cashCost).Round(2),
		AMTExposure:   decimal.NewFromFloat(amtExposure).Round(2),
		SellSameYear:  req.SellSameYear,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.exerciseRepo.Create(txCtx, exercise); err != nil {
			return fmt.Errorf("failed to create exercise: %w", err)
		}
		writeAuditLog(txCtx, s.auditRepo, userID, model.ActionCreateExercise, exercise.ID.String(), grantModel.Ticker, req)
		return nil
	})
	if err != nil {
		return ExerciseResponse{}, err
	}

	return toExerciseResponse(*exercise), nil
}

func (s *exerciseService) DeleteExercise(ctx context.Context, id string, userID string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid exercise id: %w", err)
	}

	exercise, err := s.exerciseRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("exercise not found")
		}
		return fmt.Errorf("failed to fetch exercise: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.exerciseRepo.Delete(txCtx, uid); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}
		writeAuditLog(txCtx, s.auditRepo, userID, model.ActionDeleteExercise, id, exercise.GrantID.String(), map[string]string{"deleted_id": id})
		return nil
	})
	return err
}

func (s *exerciseService) ListExercises(ctx context.Context, clientID string) ([]ExerciseResponse, error) {
	uid, err := uuid.Parse(clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client id: %w", err)
	}

	exercises, err := s.exerciseRepo.ListByClient(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exercises: %w", err)
	}

	res := make([]ExerciseResponse, 0, len(exercises))
	for _, ex := range exercises {
		res = append(res, toExerciseResponse(ex))
	}
	return res, nil
}

func toExerciseResponse(ex model.PlannedExercise) ExerciseResponse {
	return ExerciseResponse{
		ID:            ex.ID,
		ClientID:      ex.ClientID,
		GrantID:       ex.GrantID,
		Shares:        ex.Shares.String(),
		ExerciseDate:  ex.ExerciseDate.Format(grantDateLayout),
		StrikePrice:   ex.StrikePrice.String(),
		FMVAtExercise: ex.FMVAtExercise.String(),
		CashCost:      ex.CashCost.String(),
		AMTExposure:   ex.AMTExposure.String(),
		SellSameYear:  ex.SellSameYear,
		CreatedAt:     ex.CreatedAt,
	}
}
