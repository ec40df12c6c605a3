package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"aeroclub/core/database"
	"aeroclub/core/logger"
	"aeroclub/modules/oil/entity"
)

// OilRepository handles oil log database operations.
type OilRepository struct {
	DB database.Database
}

func NewOilRepository(db database.Database) *OilRepository {
	return &OilRepository{DB: db}
}

type OilRepositoryInterface interface {
	Create(ctx context.Context, log *entity.OilLog) (*entity.OilLog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OilLog, error)
	List(ctx context.Context) ([]entity.OilLogWithUser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func (r *OilRepository) Create(ctx context.Context, log *entity.OilLog) (*entity.OilLog, error) {
	query := `
		INSERT INTO oil_logs (user_id, date, quarts, hobbs_time, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, date, quarts, hobbs_time, notes, created_at
	`

	var created entity.OilLog
	err := r.DB.GetContext(ctx, &created, query,
		log.UserID, log.Date, log.Quarts, log.HobbsTime, log.Notes)
	if err != nil {
		logger.Error("OilRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *OilRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OilLog, error) {
	query := `
		SELECT id, user_id, date, quarts, hobbs_time, notes, created_at
		FROM oil_logs WHERE id = $1
	`

	var log entity.OilLog
	err := r.DB.GetContext(ctx, &log, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("OilRepository:GetByID", err)
		return nil, err
	}

	return &log, nil
}

func (r *OilRepository) List(ctx context.Context) ([]entity.OilLogWithUser, error) {
	query := `
		SELECT o.id, o.user_id, o.date, o.quarts, o.hobbs_time, o.notes, o.created_at,
		       u.name AS user_name
		FROM oil_logs o
		JOIN users u ON o.user_id = u.id
		ORDER BY o.date DESC
	`

	var logs []entity.OilLogWithUser
	if err := r.DB.SelectContext(ctx, &logs, query); err != nil {
		logger.Error("OilRepository:List", err)
		return nil, err
	}

	return logs, nil
}

func (r *OilRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM oil_logs WHERE id = $1 RETURNING id`

	var deleted uuid.UUID
	err := r.DB.GetContext(ctx, &deleted, query, id)
	if err != nil && err != sql.ErrNoRows {
		logger.Error("OilRepository:Delete", err)
	}
	return err
}
