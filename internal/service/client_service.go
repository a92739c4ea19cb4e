package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fra890/equity-compass/internal/model"
	"github.com/fra890/equity-compass/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

// Rate and money fields travel as decimal strings (e.g. "0.093", "250000")
// so a stored zero override survives the round trip unambiguously.
type CreateClientRequest struct {
	Name              string `json:"name" binding:"required"`
	FilingStatus      string `json:"filing_status" binding:"required,oneof=single married_joint"`
	FederalBracket    string `json:"federal_bracket" binding:"required"` // percent, 0..100
	StateCode         string `json:"state_code" binding:"required"`
	EstimatedIncome   string `json:"estimated_income"`    // optional
	StateRateOverride string `json:"state_rate_override"` // optional fraction
	LTCGRateOverride  string `json:"ltcg_rate_override"`  // optional fraction
}

type UpdateClientRequest struct {
	Name              *string `json:"name"`
	FilingStatus      *string `json:"filing_status"`
	FederalBracket    *string `json:"federal_bracket"`
	StateCode         *string `json:"state_code"`
	EstimatedIncome   *string `json:"estimated_income"`    // empty string clears the field
	StateRateOverride *string `json:"state_rate_override"` // empty string clears the override
	LTCGRateOverride  *string `json:"ltcg_rate_override"`
}

type ClientResponse struct {
	ID                uuid.UUID          `json:"id"`
	AdvisorID         uuid.UUID          `json:"advisor_id"`
	Name              string             `json:"name"`
	FilingStatus      string             `json:"filing_status"`
	FederalBracket    string             `json:"federal_bracket"`
	StateCode         string             `json:"state_code"`
	EstimatedIncome   *string            `json:"estimated_income"`
	StateRateOverride *string            `json:"state_rate_override"`
	LTCGRateOverride  *string            `json:"ltcg_rate_override"`
	Grants            []GrantResponse    `json:"grants"`
	Exercises         []ExerciseResponse `json:"exercises"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// --- Interface ---

type ClientService interface {
	CreateClient(ctx context.Context, req CreateClientRequest, advisorID string) (ClientResponse, error)
	UpdateClient(ctx context.Context, id string, req UpdateClientRequest, userID string) (ClientResponse, error)
	DeleteClient(ctx context.Context, id string, userID string) error
	GetClient(ctx context.Context, id string) (ClientResponse, error)
	ListClients(ctx context.Context, advisorID, search string, page, limit int) ([]ClientResponse, int64, error)
}

type clientService struct {
	clientRepo repository.ClientRepository
	auditRepo  repository.AuditRepository
}

func NewClientService(clientRepo repository.ClientRepository, auditRepo repository.AuditRepository) ClientService {
	return &clientService{clientRepo: clientRepo, auditRepo: auditRepo}
}

// --- Validation helpers ---

func parseBracket(s string) (decimal.Decimal, error) {
	bracket, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid federal_bracket: %w", err)
	}
	if bracket.IsNegative() || bracket.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, fmt.Errorf("federal_bracket must be between 0 and 100")
	}
	return bracket, nil
}

// parseOptionalDecimal maps "" to nil (field not set / cleared).
func parseOptionalDecimal(field, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%s must not be negative", field)
	}
	return &d, nil
}

func normalizeStateCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// --- Implementation ---

func (s *clientService) CreateClient(ctx context.Context, req CreateClientRequest, advisorID string) (ClientResponse, error) {
	advisorUID, err := uuid.Parse(advisorID)
	if err != nil {
		return ClientResponse{}, fmt.Errorf("invalid advisor id: %w", err)
	}

	bracket, err := parseBracket(req.FederalBracket)
	if err != nil {
		return ClientResponse{}, err
	}
	income, err := parseOptionalDecimal("estimated_income", req.EstimatedIncome)
	if err != nil {
		return ClientResponse{}, err
	}
	stateOverride, err := parseOptionalDecimal("state_rate_override", req.StateRateOverride)
	if err != nil {
		return ClientResponse{}, err
	}
	ltcgOverride, err := parseOptionalDecimal("ltcg_rate_override", req.LTCGRateOverride)
	if err != nil {
		return ClientResponse{}, err
	}

	client := &model.Client{
		AdvisorID:         advisorUID,
		Name:              req.Name,
		FilingStatus:      req.FilingStatus,
		FederalBracket:    bracket,
		StateCode:         normalizeStateCode(req.StateCode),
		EstimatedIncome:   income,
		StateRateOverride: stateOverride,
		LTCGRateOverride:  ltcgOverride,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return ClientResponse{}, fmt.Errorf("failed to create client: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, advisorID, model.ActionCreateClient, client.ID.String(), client.Name, req)

	return toClientResponse(*client), nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req UpdateClientRequest, userID string) (ClientResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ClientResponse{}, fmt.Errorf("invalid client id: %w", err)
	}

	client, err := s.clientRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClientResponse{}, fmt.Errorf("client not found")
		}
		return ClientResponse{}, fmt.Errorf("failed to fetch client: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return ClientResponse{}, fmt.Errorf("name cannot be empty")
		}
		client.Name = *req.Name
	}
	if req.FilingStatus != nil {
		switch *req.FilingStatus {
		case model.FilingSingle, model.FilingMarriedJoint:
			client.FilingStatus = *req.FilingStatus
		default:
			return ClientResponse{}, fmt.Errorf("filing_status must be one of: single, married_joint")
		}
	}
	if req.FederalBracket != nil {
		bracket, err := parseBracket(*req.FederalBracket)
		if err != nil {
			return ClientResponse{}, err
		}
		client.FederalBracket = bracket
	}
	if req.StateCode != nil {
		client.StateCode = normalizeStateCode(*req.StateCode)
	}
	if req.EstimatedIncome != nil {
		income, err := parseOptionalDecimal("estimated_income", *req.EstimatedIncome)
		if err != nil {
			return ClientResponse{}, err
		}
		client.EstimatedIncome = income
	}
	if req.StateRateOverride != nil {
		override, err := parseOptionalDecimal("state_rate_override", *req.StateRateOverride)
		if err != nil {
			return ClientResponse{}, err
		}
		client.StateRateOverride = override
	}
	if req.LTCGRateOverride != nil {
		override, err := parseOptionalDecimal("ltcg_rate_override", *req.LTCGRateOverride)
		if err != nil {
			return ClientResponse{}, err
		}
		client.LTCGRateOverride = override
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return ClientResponse{}, fmt.Errorf("failed to update client: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionUpdateClient, client.ID.String(), client.Name, req)

	return toClientResponse(*client), nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string, userID string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid client id: %w", err)
	}

	client, err := s.clientRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("client not found")
		}
		return fmt.Errorf("failed to fetch client: %w", err)
	}

	if err := s.clientRepo.Delete(ctx, uid); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionDeleteClient, id, client.Name, map[string]string{"deleted_id": id})

	return nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (ClientResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ClientResponse{}, fmt.Errorf("invalid client id: %w", err)
	}

	client, err := s.clientRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClientResponse{}, fmt.Errorf("client not found")
		}
		return ClientResponse{}, fmt.Errorf("failed to fetch client: %w", err)
	}

	return toClientResponse(*client), nil
}

func (s *clientService) ListClients(ctx context.Context, advisorID, search string, page, limit int) ([]ClientResponse, int64, error) {
	advisorUID, err := uuid.Parse(advisorID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid advisor id: %w", err)
	}

	clients, total, err := s.clientRepo.List(ctx, advisorUID, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch clients: %w", err)
	}

	res := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		res = append(res, toClientResponse(c))
	}

	return res, total, nil
}

// --- Response mappers ---

func decimalPtrToString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func toClientResponse(c model.Client) ClientResponse {
	grants := make([]GrantResponse, 0, len(c.Grants))
	for _, g := range c.Grants {
		grants = append(grants, toGrantResponse(g))
	}
	exercises := make([]ExerciseResponse, 0, len(c.Exercises))
	for _, ex := range c.Exercises {
		exercises = append(exercises, toExerciseResponse(ex))
	}

	return ClientResponse{
		ID:                c.ID,
		AdvisorID:         c.AdvisorID,
		Name:              c.Name,
		FilingStatus:      c.FilingStatus,
		FederalBracket:    c.FederalBracket.String(),
		StateCode:         c.StateCode,
		EstimatedIncome:   decimalPtrToString(c.EstimatedIncome),
		StateRateOverride: decimalPtrToString(c.StateRateOverride),
		LTCGRateOverride:  decimalPtrToString(c.LTCGRateOverride),
		Grants:            grants,
		Exercises:         exercises,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
