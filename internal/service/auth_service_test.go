package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/repository"
	"alcyxob/run-trainer/internal/repository/mocks"
)

const testSecret = "test-secret"

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		email     string
		password  string
		role      domain.Role
		setupMock func(m *mocks.UserRepository)
		wantErr   error
	}{
		{
			name:     "creates athlete",
			email:    " Ann@Example.com ",
			password: "long-enough",
			role:     domain.RoleAthlete,
			setupMock: func(m *mocks.UserRepository) {
				m.On("GetByEmail", ctx, "ann@example.com").Return(nil, repository.ErrNotFound).Once()
				m.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
					return u.Email == "ann@example.com" && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("long-enough")) == nil
				})).Return("user-1", nil).Once()
			},
		},
		{
			name:     "email taken",
			email:    "ann@example.com",
			password: "long-enough",
			role:     domain.RoleCoach,
			setupMock: func(m *mocks.UserRepository) {
				m.On("GetByEmail", ctx, "ann@example.com").Return(&domain.User{ID: "u"}, nil).Once()
			},
			wantErr: ErrUserAlreadyExists,
		},
		{
			name:     "concurrent duplicate on insert",
			email:    "ann@example.com",
			password: "long-enough",
			role:     domain.RoleAthlete,
			setupMock: func(m *mocks.UserRepository) {
				m.On("GetByEmail", ctx, "ann@example.com").Return(nil, repository.ErrNotFound).Once()
				m.On("Create", ctx, mock.Anything).Return("", repository.ErrDuplicate).Once()
			},
			wantErr: ErrUserAlreadyExists,
		},
		{name: "short password", email: "ann@example.com", password: "short", role: domain.RoleAthlete, wantErr: ErrValidation},
		{name: "bad email", email: "not-an-email", password: "long-enough", role: domain.RoleAthlete, wantErr: ErrValidation},
		{name: "unknown role", email: "ann@example.com", password: "long-enough", role: "trainer", wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.UserRepository)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}
			svc := NewAuthService(repo, testSecret, time.Hour, testLogger)

			user, err := svc.Register(ctx, "Ann", tt.email, tt.password, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "user-1", user.ID)
				assert.Empty(t, user.PasswordHash)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("long-enough"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := func() *domain.User {
		return &domain.User{ID: "user-1", Email: "ann@example.com", PasswordHash: string(hash), Role: domain.RoleAthlete}
	}

	t.Run("issues token with claims", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		repo.On("GetByEmail", ctx, "ann@example.com").Return(stored(), nil).Once()
		svc := NewAuthService(repo, testSecret, time.Hour, testLogger)

		token, user, err := svc.Login(ctx, "ann@example.com", "long-enough")
		require.NoError(t, err)
		assert.Empty(t, user.PasswordHash)

		claims := &jwtClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, domain.RoleAthlete, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		repo.On("GetByEmail", ctx, "ann@example.com").Return(stored(), nil).Once()
		svc := NewAuthService(repo, testSecret, time.Hour, testLogger)

		_, user, err := svc.Login(ctx, "ann@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
		assert.Nil(t, user)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		repo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrNotFound).Once()
		svc := NewAuthService(repo, testSecret, time.Hour, testLogger)

		_, _, err := svc.Login(ctx, "nobody@example.com", "long-enough")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		boom := errors.New("connection reset")
		repo.On("GetByEmail", ctx, "ann@example.com").Return(nil, boom).Once()
		svc := NewAuthService(repo, testSecret, time.Hour, testLogger)

		_, _, err := svc.Login(ctx, "ann@example.com", "long-enough")
		assert.ErrorIs(t, err, boom)
	})
}
