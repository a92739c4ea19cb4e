package repository

import (
	"context"

	"github.com/fra890/equity-compass/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GrantRepository interface {
	Create(ctx context.Context, grant *model.Grant) error
	Update(ctx context.Context, grant *model.Grant) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Grant, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Grant, error)
}

type grantRepository struct {
	db *gorm.DB
}

func NewGrantRepository(db *gorm.DB) GrantRepository {
	return &grantRepository{db: db}
}

func (r *grantRepository) Create(ctx context.Context, grant *model.Grant) error {
	return GetDB(ctx, r.db).Create(grant).Error
}

func (r *grantRepository) Update(ctx context.Context, grant *model.Grant) error {
	return GetDB(ctx, r.db).Save(grant).Error
}

func (r *grantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Grant{}).Error
}

func (r *grantRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Grant, error) {
	var grant model.Grant
	if err := GetDB(ctx, r.db).First(&grant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *grantRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Grant, error) {
	var grants []model.Grant
	if err := GetDB(ctx, r.db).
		Where("client_id = ?", clientID).
		Order("grant_date asc").
		Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}
