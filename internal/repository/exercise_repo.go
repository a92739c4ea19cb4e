package repository

import (
	"context"

	"github.com/fra890/equity-compass/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExerciseRepository persists planned exercises. There is deliberately no
// Update: a planned exercise is immutable once recorded.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *model.PlannedExercise) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PlannedExercise, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.PlannedExercise, error)
	ListByGrant(ctx context.Context, grantID uuid.UUID) ([]model.PlannedExercise, error)
}

type exerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *model.PlannedExercise) error {
	return GetDB(ctx, r.db).Create(exercise).Error
}

func (r *exerciseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.PlannedExercise{}).Error
}

func (r *exerciseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PlannedExercise, error) {
	var exercise model.PlannedExercise
	if err := GetDB(ctx, r.db).First(&exercise, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.PlannedExercise, error) {
	var exercises []model.PlannedExercise
	if err := GetDB(ctx, r.db).
		Where("client_id = ?", clientID).
		Order("exercise_date asc").
		Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *exerciseRepository) ListByGrant(ctx context.Context, grantID uuid.UUID) ([]model.PlannedExercise, error) {
	var exercises []model.PlannedExercise
	if err := GetDB(ctx, r.db).
		Where("grant_id = ?", grantID).
		Order("exercise_date asc").
		Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}
