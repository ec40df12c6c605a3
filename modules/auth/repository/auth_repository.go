package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"aeroclub/core/database"
	"aeroclub/core/logger"
	"aeroclub/core/params"
	"aeroclub/modules/auth/entity"
)

// AuthRepository handles user database operations.
type AuthRepository struct {
	DB database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: db}
}

// AuthRepositoryInterface defines the repository contract.
type AuthRepositoryInterface interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdateUserProfile(ctx context.Context, id uuid.UUID, name string) error
	UpdateUserPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
	CountUsers(ctx context.Context) (int, error)
	ListUsers(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedUserEntity, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, name, email, password, color, role, created_at
		FROM users WHERE email = $1
	`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByEmail", err)
		return nil, err
	}

	return &user, nil
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, name, email, password, color, role, created_at
		FROM users WHERE id = $1
	`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID", err)
		return nil, err
	}

	return &user, nil
}

func (r *AuthRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (name, email, password, color, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password, color, role, created_at
	`

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query,
		user.Name, user.Email, user.Password, user.Color, user.Role)
	if err != nil {
		logger.Error("AuthRepository:CreateUser", err)
		return nil, err
	}

	return &created, nil
}

func (r *AuthRepository) UpdateUserProfile(ctx context.Context, id uuid.UUID, name string) error {
	query := `UPDATE users SET name = $2 WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id, name); err != nil {
		logger.Error("AuthRepository:UpdateUserProfile", err)
		return err
	}
	return nil
}

func (r *AuthRepository) UpdateUserPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	query := `UPDATE users SET password = $2 WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id, hashedPassword); err != nil {
		logger.Error("AuthRepository:UpdateUserPassword", err)
		return err
	}
	return nil
}

func (r *AuthRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		logger.Error("AuthRepository:CountUsers", err)
		return 0, err
	}
	return count, nil
}

// DeleteUser removes a member. Their bookings, oil logs and
// notifications go with them through the foreign-key cascade.
// sql.ErrNoRows signals a missing id.
func (r *AuthRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1 RETURNING id`

	var deleted uuid.UUID
	err := r.DB.GetContext(ctx, &deleted, query, id)
	if err != nil && err != sql.ErrNoRows {
		logger.Error("AuthRepository:DeleteUser", err)
	}
	return err
}

func (r *AuthRepository) ListUsers(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedUserEntity, error) {
	offset := (queryParams.PageNumber - 1) * queryParams.PageSize

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM users`); err != nil {
		logger.Error("AuthRepository:ListUsers:Count", err)
		return nil, err
	}

	query := `
		SELECT id, name, email, password, color, role, created_at
		FROM users
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`

	var users []entity.User
	if err := r.DB.SelectContext(ctx, &users, query, queryParams.PageSize, offset); err != nil {
		logger.Error("AuthRepository:ListUsers:Select", err)
		return nil, err
	}

	return &entity.PaginatedUserEntity{
		Items:      users,
		TotalItems: totalItems,
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}
