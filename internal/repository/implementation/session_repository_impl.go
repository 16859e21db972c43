package implementation

import (
	"context"
	"fmt"

	"smarterstarts-be/internal/entity"
	"smarterstarts-be/internal/mapper"
	"smarterstarts-be/internal/model"
	"smarterstarts-be/internal/repository/contract"

	"gorm.io/gorm"
)

type sessionRepository struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

// NewSessionRepository stores sessions in the consultation_sessions table.
func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &sessionRepository{db: db, mapper: mapper.NewSessionMapper()}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) (string, error) {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return "", fmt.Errorf("insert consultation session: %w", err)
	}
	return m.Id.String(), nil
}

// AutoMigrate creates or updates the consultation_sessions table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.ConsultationSession{})
}
