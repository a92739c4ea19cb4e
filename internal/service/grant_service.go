package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fra890/equity-compass/internal/model"
	"github.com/fra890/equity-compass/internal/repository"
	ws "github.com/fra890/equity-compass/internal/websocket"
	"github.com/fra890/equity-compass/pkg/stockapi"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateGrantRequest struct {
	ClientID        string `json:"client_id" binding:"required"`
	Type            string `json:"type" binding:"required,oneof=RSU ISO"`
	Ticker          string `json:"ticker"`
	SharePrice      string `json:"share_price" binding:"required"`
	StrikePrice     string `json:"strike_price"` // required for ISO grants
	GrantDate       string `json:"grant_date" binding:"required"` // YYYY-MM-DD
	TotalShares     string `json:"total_shares" binding:"required"`
	VestingVariant  string `json:"vesting_variant" binding:"required,oneof=CLIFF_1YR QUARTERLY"`
	WithholdingRate string `json:"withholding_rate"` // RSU only, fraction 0..1
}

type UpdateGrantRequest struct {
	Ticker          *string `json:"ticker"`
	SharePrice      *string `json:"share_price"`
	StrikePrice     *string `json:"strike_price"`
	GrantDate       *string `json:"grant_date"`
	TotalShares     *string `json:"total_shares"`
	VestingVariant  *string `json:"vesting_variant"`
	WithholdingRate *string `json:"withholding_rate"`
}

type GrantResponse struct {
	ID              uuid.UUID  `json:"id"`
	ClientID        uuid.UUID  `json:"client_id"`
	Type            string     `json:"type"`
	Ticker          string     `json:"ticker"`
	SharePrice      string     `json:"share_price"`
	StrikePrice     *string    `json:"strike_price"`
	GrantDate       string     `json:"grant_date"`
	TotalShares     string     `json:"total_shares"`
	VestingVariant  string     `json:"vesting_variant"`
	WithholdingRate *string    `json:"withholding_rate"`
	PriceSource     string     `json:"price_source,omitempty"`
	PriceUpdatedAt  *time.Time `json:"price_updated_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// --- Interface ---

type GrantService interface {
	CreateGrant(ctx context.Context, req CreateGrantRequest, userID string) (GrantResponse, error)
	UpdateGrant(ctx context.Context, id string, req UpdateGrantRequest, userID string) (GrantResponse, error)
	DeleteGrant(ctx context.Context, id string, userID string) error
	GetGrant(ctx context.Context, id string) (GrantResponse, error)
	ListGrants(ctx context.Context, clientID string) ([]GrantResponse, error)
	RefreshPrice(ctx context.Context, id string, userID string) (GrantResponse, error)
}

type grantService struct {
	grantRepo  repository.GrantRepository
	clientRepo repository.ClientRepository
	auditRepo  repository.AuditRepository
	quotes     *stockapi.Client
	hub        *ws.Hub
}

func NewGrantService(
	grantRepo repository.GrantRepository,
	clientRepo repository.ClientRepository,
	auditRepo repository.AuditRepository,
	quotes *stockapi.Client,
	hub *ws.Hub,
) GrantService {
	return &grantService{
		grantRepo:  grantRepo,
		clientRepo: clientRepo,
		auditRepo:  auditRepo,
		quotes:     quotes,
		hub:        hub,
	}
}

// --- Parsing helpers ---

const grantDateLayout = "2006-01-02"

func parseGrantDate(s string) (time.Time, error) {
	d, err := time.Parse(grantDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("grant_date must be YYYY-MM-DD: %w", err)
	}
	return d, nil
}

func parsePositiveDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", field, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s must be positive", field)
	}
	return d, nil
}

func parseWithholdingRate(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid withholding_rate: %w", err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("withholding_rate must be a fraction between 0 and 1")
	}
	return &rate, nil
}

// validateGrantShape enforces the cross-field rules that gin bindings cannot:
// ISO grants need a strike, RSU grants must not carry one.
func validateGrantShape(grant *model.Grant) error {
	switch grant.Type {
	case model.GrantTypeISO:
		if grant.StrikePrice == nil || !grant.StrikePrice.IsPositive() {
			return fmt.Errorf("ISO grants require a positive strike_price")
		}
		if grant.WithholdingRate != nil {
			return fmt.Errorf("withholding_rate applies to RSU grants only")
		}
	case model.GrantTypeRSU:
		if grant.StrikePrice != nil {
			return fmt.Errorf("strike_price applies to ISO grants only")
		}
	default:
		return fmt.Errorf("type must be one of: RSU, ISO")
	}
	return nil
}

// --- Implementation ---

func (s *grantService) CreateGrant(ctx context.Context, req CreateGrantRequest, userID string) (GrantResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return GrantResponse{}, fmt.Errorf("invalid client_id: %w", err)
	}
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GrantResponse{}, fmt.Errorf("client not found")
		}
		return GrantResponse{}, fmt.Errorf("failed to fetch client: %w", err)
	}

	price, err := parsePositiveDecimal("share_price", req.SharePrice)
	if err != nil {
		return GrantResponse{}, err
	}
	shares, err := parsePositiveDecimal("total_shares", req.TotalShares)
	if err != nil {
		return GrantResponse{}, err
	}
	grantDate, err := parseGrantDate(req.GrantDate)
	if err != nil {
		return GrantResponse{}, err
	}

	var strike *decimal.Decimal
	if req.StrikePrice != "" {
		parsed, err := parsePositiveDecimal("strike_price", req.StrikePrice)
		if err != nil {
			return GrantResponse{}, err
		}
		strike = &parsed
	}
	withholding, err := parseWithholdingRate(req.WithholdingRate)
	if err != nil {
		return GrantResponse{}, err
	}

	grant := &model.Grant{
		ClientID:        clientID,
		Type:            req.Type,
		Ticker:          strings.ToUpper(strings.TrimSpace(req.Ticker)),
		SharePrice:      price,
		StrikePrice:     strike,
		GrantDate:       grantDate,
		TotalShares:     shares,
		VestingVariant:  req.VestingVariant,
		WithholdingRate: withholding,
	}
	if err := validateGrantShape(grant); err != nil {
		return GrantResponse{}, err
	}

	if err := s.grantRepo.Create(ctx, grant); err != nil {
		return GrantResponse{}, fmt.Errorf("failed to create grant: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionCreateGrant, grant.ID.String(), grant.Ticker, req)

	return toGrantResponse(*grant), nil
}

func (s *grantService) UpdateGrant(ctx context.Context, id string, req UpdateGrantRequest, userID string) (GrantResponse, error) {
	grant, err := s.findGrant(ctx, id)
	if err != nil {
		return GrantResponse{}, err
	}

	if req.Ticker != nil {
		grant.Ticker = strings.ToUpper(strings.TrimSpace(*req.Ticker))
	}
	if req.SharePrice != nil {
		price, err := parsePositiveDecimal("share_price", *req.SharePrice)
		if err != nil {
			return GrantResponse{}, err
		}
		grant.SharePrice = price
		// A manual price edit supersedes any previous market lookup.
		grant.PriceSource = ""
		grant.PriceUpdatedAt = nil
	}
	if req.StrikePrice != nil {
		if *req.StrikePrice == "" {
			grant.StrikePrice = nil
		} else {
			strike, err := parsePositiveDecimal("strike_price", *req.StrikePrice)
			if err != nil {
				return GrantResponse{}, err
			}
			grant.StrikePrice = &strike
		}
	}
	if req.GrantDate != nil {
		grantDate, err := parseGrantDate(*req.GrantDate)
		if err != nil {
			return GrantResponse{}, err
		}
		grant.GrantDate = grantDate
	}
	if req.TotalShares != nil {
		shares, err := parsePositiveDecimal("total_shares", *req.TotalShares)
		if err != nil {
			return GrantResponse{}, err
		}
		grant.TotalShares = shares
	}
	if req.VestingVariant != nil {
		switch *req.VestingVariant {
		case model.VestingCliff1Yr, model.VestingQuarterly:
			grant.VestingVariant = *req.VestingVariant
		default:
			return GrantResponse{}, fmt.Errorf("vesting_variant must be one of: CLIFF_1YR, QUARTERLY")
		}
	}
	if req.WithholdingRate != nil {
		withholding, err := parseWithholdingRate(*req.WithholdingRate)
		if err != nil {
			return GrantResponse{}, err
		}
		grant.WithholdingRate = withholding
	}

	if err := validateGrantShape(grant); err != nil {
		return GrantResponse{}, err
	}

	if err := s.grantRepo.Update(ctx, grant); err != nil {
		return GrantResponse{}, fmt.Errorf("failed to update grant: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionUpdateGrant, grant.ID.String(), grant.Ticker, req)

	return toGrantResponse(*grant), nil
}

func (s *grantService) DeleteGrant(ctx context.Context, id string, userID string) error {
	grant, err := s.findGrant(ctx, id)
	if err != nil {
		return err
	}

	if err := s.grantRepo.Delete(ctx, grant.ID); err != nil {
		return fmt.Errorf("failed to delete grant: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionDeleteGrant, id, grant.Ticker, map[string]string{"deleted_id": id})

	return nil
}

func (s *grantService) GetGrant(ctx context.Context, id string) (GrantResponse, error) {
	grant, err := s.findGrant(ctx, id)
	if err != nil {
		return GrantResponse{}, err
	}
	return toGrantResponse(*grant), nil
}

func (s *grantService) ListGrants(ctx context.Context, clientID string) ([]GrantResponse, error) {
	uid, err := uuid.Parse(clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client id: %w", err)
	}

	grants, err := s.grantRepo.ListByClient(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grants: %w", err)
	}

	res := make([]GrantResponse, 0, len(grants))
	for _, g := range grants {
		res = append(res, toGrantResponse(g))
	}
	return res, nil
}

// RefreshPrice replaces the grant's share price with the current market quote
// for its ticker and notifies connected dashboards.
func (s *grantService) RefreshPrice(ctx context.Context, id string, userID string) (GrantResponse, error) {
	grant, err := s.findGrant(ctx, id)
	if err != nil {
		return GrantResponse{}, err
	}
	if grant.Ticker == "" {
		return GrantResponse{}, fmt.Errorf("grant has no ticker; set the price manually")
	}

	quote, err := s.quotes.GetQuote(ctx, grant.Ticker)
	if err != nil {
		return GrantResponse{}, fmt.Errorf("price lookup for %s failed: %w", grant.Ticker, err)
	}
	if quote.Price <= 0 {
		return GrantResponse{}, fmt.Errorf("price lookup for %s returned a non-positive price", grant.Ticker)
	}

	grant.SharePrice = decimal.NewFromFloat(quote.Price)
	grant.PriceSource = quote.SourceURL
	now := quote.FetchedAt
	grant.PriceUpdatedAt = &now

	if err := s.grantRepo.Update(ctx, grant); err != nil {
		return GrantResponse{}, fmt.Errorf("failed to update grant: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionRefreshPrice, grant.ID.String(), grant.Ticker, quote)
	s.broadcastPriceUpdate(grant)

	return toGrantResponse(*grant), nil
}

func (s *grantService) broadcastPriceUpdate(grant *model.Grant) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"type":        "grant_price_updated",
		"grant_id":    grant.ID.String(),
		"client_id":   grant.ClientID.String(),
		"ticker":      grant.Ticker,
		"share_price": grant.SharePrice.String(),
	})
	if err != nil {
		return
	}
	select {
	case s.hub.Broadcast <- payload:
	default:
		// No listeners; drop instead of blocking the request.
	}
}

func (s *grantService) findGrant(ctx context.Context, id string) (*model.Grant, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid grant id: %w", err)
	}

	grant, err := s.grantRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("grant not found")
		}
		return nil, fmt.Errorf("failed to fetch grant: %w", err)
	}
	return grant, nil
}

func toGrantResponse(g model.Grant) GrantResponse {
	return GrantResponse{
		ID:              g.ID,
		ClientID:        g.ClientID,
		Type:            g.Type,
		Ticker:          g.Ticker,
		SharePrice:      g.SharePrice.String(),
		StrikePrice:     decimalPtrToString(g.StrikePrice),
		GrantDate:       g.GrantDate.Format(grantDateLayout),
		TotalShares:     g.TotalShares.String(),
		VestingVariant:  g.VestingVariant,
		WithholdingRate: decimalPtrToString(g.WithholdingRate),
		PriceSource:     g.PriceSource,
		PriceUpdatedAt:  g.PriceUpdatedAt,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}
