package service

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"aeroclub/core/config"
	"aeroclub/core/constants"
	"aeroclub/core/errors"
	"aeroclub/core/params"
	"aeroclub/core/utils"
	"aeroclub/modules/auth/dto"
	"aeroclub/modules/auth/entity"
)

func TestMain(m *testing.M) {
	if _, err := config.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeAuthRepo struct {
	users []entity.User
}

func (f *fakeAuthRepo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAuthRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAuthRepo) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	created := *user
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	f.users = append(f.users, created)
	return &created, nil
}

func (f *fakeAuthRepo) UpdateUserProfile(ctx context.Context, id uuid.UUID, name string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Name = name
		}
	}
	return nil
}

func (f *fakeAuthRepo) UpdateUserPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Password = hashedPassword
		}
	}
	return nil
}

func (f *fakeAuthRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeAuthRepo) CountUsers(ctx context.Context) (int, error) {
	return len(f.users), nil
}

func (f *fakeAuthRepo) ListUsers(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedUserEntity, error) {
	return &entity.PaginatedUserEntity{
		Items:      append([]entity.User(nil), f.users...),
		TotalItems: len(f.users),
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

type fakeCache struct {
	blacklisted map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{blacklisted: map[string]bool{}}
}

func (f *fakeCache) AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	f.blacklisted[token] = true
	return nil
}

func (f *fakeCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return f.blacklisted[token], nil
}

func (f *fakeCache) Close() error { return nil }

func registerReq(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:     "Test Pilot",
		Email:    email,
		Password: "hunter2hunter2",
	}
}

func TestRegisterAssignsColorAndRole(t *testing.T) {
	svc := NewAuthService(&fakeAuthRepo{}, newFakeCache())
	ctx := context.Background()

	first, appErr := svc.Register(ctx, registerReq("a@club.test"))
	require.Nil(t, appErr)
	require.Equal(t, constants.RoleRenter, first.Role)
	require.Equal(t, entity.UserColors[0], first.Color)

	second, appErr := svc.Register(ctx, registerReq("b@club.test"))
	require.Nil(t, appErr)
	require.Equal(t, entity.UserColors[1], second.Color)

	ownerReq := registerReq("owner@club.test")
	ownerReq.Role = constants.RoleOwner
	owner, appErr := svc.Register(ctx, ownerReq)
	require.Nil(t, appErr)
	require.Equal(t, constants.RoleOwner, owner.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewAuthService(&fakeAuthRepo{}, newFakeCache())
	ctx := context.Background()

	_, appErr := svc.Register(ctx, registerReq("a@club.test"))
	require.Nil(t, appErr)

	_, appErr = svc.Register(ctx, registerReq("a@club.test"))
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrAlreadyExists, appErr.Code)

	// Email lookup is case-insensitive.
	_, appErr = svc.Register(ctx, registerReq("A@Club.Test"))
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrAlreadyExists, appErr.Code)
}

func TestLogin(t *testing.T) {
	repo := &fakeAuthRepo{}
	svc := NewAuthService(repo, newFakeCache())
	ctx := context.Background()

	created, appErr := svc.Register(ctx, registerReq("a@club.test"))
	require.Nil(t, appErr)

	resp, appErr := svc.Login(ctx, &dto.LoginRequest{Email: "a@club.test", Password: "hunter2hunter2"})
	require.Nil(t, appErr)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, created.ID, resp.User.ID)

	claims, err := utils.ValidateAndParseToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, created.ID, claims.UserID)
	require.Equal(t, constants.RoleRenter, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(&fakeAuthRepo{}, newFakeCache())
	ctx := context.Background()

	_, appErr := svc.Register(ctx, registerReq("a@club.test"))
	require.Nil(t, appErr)

	_, appErr = svc.Login(ctx, &dto.LoginRequest{Email: "a@club.test", Password: "wrong"})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrUnauthorized, appErr.Code)

	// Unknown email gets the same answer as a wrong password.
	_, appErr = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@club.test", Password: "hunter2hunter2"})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	cache := newFakeCache()
	svc := NewAuthService(&fakeAuthRepo{}, cache)
	ctx := context.Background()

	_, appErr := svc.Register(ctx, registerReq("a@club.test"))
	require.Nil(t, appErr)
	resp, appErr := svc.Login(ctx, &dto.LoginRequest{Email: "a@club.test", Password: "hunter2hunter2"})
	require.Nil(t, appErr)

	require.Nil(t, svc.Logout(ctx, resp.Token))

	revoked, err := cache.IsTokenBlacklisted(ctx, resp.Token)
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestDeleteUser(t *testing.T) {
	repo := &fakeAuthRepo{}
	svc := NewAuthService(repo, newFakeCache())
	ctx := context.Background()

	ownerReq := registerReq("owner@club.test")
	ownerReq.Role = constants.RoleOwner
	owner, appErr := svc.Register(ctx, ownerReq)
	require.Nil(t, appErr)

	member, appErr := svc.Register(ctx, registerReq("member@club.test"))
	require.Nil(t, appErr)

	// Renters cannot delete anyone.
	appErr = svc.DeleteUser(ctx, member.ID, constants.RoleRenter, owner.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)

	// The owner cannot delete their own account.
	appErr = svc.DeleteUser(ctx, owner.ID, constants.RoleOwner, owner.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)

	appErr = svc.DeleteUser(ctx, owner.ID, constants.RoleOwner, member.ID)
	require.Nil(t, appErr)
	require.Len(t, repo.users, 1)

	appErr = svc.DeleteUser(ctx, owner.ID, constants.RoleOwner, member.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestUpdateProfile(t *testing.T) {
	repo := &fakeAuthRepo{}
	svc := NewAuthService(repo, newFakeCache())
	ctx := context.Background()

	created, appErr := svc.Register(ctx, registerReq("a@club.test"))
	require.Nil(t, appErr)

	updated, appErr := svc.UpdateProfile(ctx, created.ID, &dto.UpdateProfileRequest{Name: "New Name"})
	require.Nil(t, appErr)
	require.Equal(t, "New Name", updated.Name)

	_, appErr = svc.UpdateProfile(ctx, uuid.New(), &dto.UpdateProfileRequest{Name: "x"})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}
