package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"aeroclub/core/cache"
	"aeroclub/core/constants"
	"aeroclub/core/errors"
	"aeroclub/core/logger"
	"aeroclub/core/params"
	"aeroclub/core/utils"
	"aeroclub/modules/auth/dto"
	"aeroclub/modules/auth/entity"
	"aeroclub/modules/auth/repository"
)

const pqUniqueViolation = "23505"

// AuthService is the user directory and session issuer. The rest of
// the system consumes it only through the {id, role} principal it
// stamps into tokens.
type AuthService struct {
	repo  repository.AuthRepositoryInterface
	cache cache.CacheInterface
}

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
	GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, *errors.AppError)
	ListUsers(ctx context.Context, queryParams params.QueryParams) (*dto.PaginatedUsersResponse, *errors.AppError)
	DeleteUser(ctx context.Context, requesterID uuid.UUID, requesterRole string, userID uuid.UUID) *errors.AppError
}

func NewAuthService(repo repository.AuthRepositoryInterface, c cache.CacheInterface) AuthServiceInterface {
	return &AuthService{
		repo:  repo,
		cache: c,
	}
}

// Register creates a member. The first palette color not yet cycled
// through is assigned so calendar entries stay distinguishable.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check existing user", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "email already registered", nil)
	}

	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to count users", err)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("AuthService:Register:HashPassword", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	role := constants.RoleRenter
	if req.Role == constants.RoleOwner {
		role = constants.RoleOwner
	}

	user := &entity.User{
		Name:     req.Name,
		Email:    email,
		Password: hashed,
		Color:    entity.UserColors[count%len(entity.UserColors)],
		Role:     role,
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			// Lost the race against a concurrent registration.
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "email already registered", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create user", err)
	}

	logger.Info("AuthService:Register:Created", "user_id", created.ID, "role", created.Role)
	return dto.ToUserResponse(created), nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up user", err)
	}
	if user == nil || !utils.ComparePassword(user.Password, req.Password) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid email or password", nil)
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		logger.Error("AuthService:Login:GenerateToken", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate token", err)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  *dto.ToUserResponse(user),
	}, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return errors.NewAppError(errors.ErrUnauthorized, "invalid token", nil)
	}

	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}

	if err := s.cache.AddToTokenBlacklist(ctx, token, ttl); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}

	return nil
}

func (s *AuthService) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	return dto.ToUserResponse(user), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	if req.Name != "" {
		if err := s.repo.UpdateUserProfile(ctx, userID, req.Name); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update profile", err)
		}
		user.Name = req.Name
	}

	if req.Password != "" {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			logger.Error("AuthService:UpdateProfile:HashPassword", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
		}
		if err := s.repo.UpdateUserPassword(ctx, userID, hashed); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update password", err)
		}
	}

	return dto.ToUserResponse(user), nil
}

// DeleteUser removes a member and, through the schema cascade, their
// bookings, oil logs and notifications. Owner only, and the owner
// cannot delete their own account.
func (s *AuthService) DeleteUser(ctx context.Context, requesterID uuid.UUID, requesterRole string, userID uuid.UUID) *errors.AppError {
	if requesterRole != constants.RoleOwner {
		return errors.NewAppError(errors.ErrForbidden, "owner access required", nil)
	}
	if requesterID == userID {
		return errors.NewAppError(errors.ErrInvalidInput, "you cannot delete your own account", nil)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to look up user", err)
	}
	if user == nil {
		return errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	if err := s.repo.DeleteUser(ctx, userID); err != nil && err != sql.ErrNoRows {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete user", err)
	}

	logger.Info("AuthService:DeleteUser:Deleted", "user_id", userID, "requester_id", requesterID)
	return nil
}

func (s *AuthService) ListUsers(ctx context.Context, queryParams params.QueryParams) (*dto.PaginatedUsersResponse, *errors.AppError) {
	page, err := s.repo.ListUsers(ctx, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list users", err)
	}

	items := make([]dto.UserResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *dto.ToUserResponse(&page.Items[i]))
	}

	return &dto.PaginatedUsersResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}, nil
}
