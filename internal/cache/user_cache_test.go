package cache_test

import (
	"context"
	"testing"

	"team-collab/internal/cache"
	"team-collab/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userStoreMock struct {
	mock.Mock
}

func (m *userStoreMock) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *userStoreMock) FindByID(ctx context.Context, id int64) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *userStoreMock) FindByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *userStoreMock) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	var users []models.User
	if value := args.Get(0); value != nil {
		users = value.([]models.User)
	}
	return users, args.Error(1)
}

func (m *userStoreMock) Update(ctx context.Context, user models.User) error {
	return m.Called(ctx, user).Error(0)
}

func TestUserCache_WithoutRedisPassesThrough(t *testing.T) {
	ctx := context.Background()
	store := new(userStoreMock)
	alice := models.User{ID: 1, Name: "Alice", Email: "alice@x.com", PasswordHash: "hash"}

	store.On("FindByID", mock.Anything, int64(1)).Return(alice, nil).Twice()
	store.On("FindByEmail", mock.Anything, "alice@x.com").Return(alice, nil).Once()
	store.On("Update", mock.Anything, alice).Return(nil).Once()
	store.On("List", mock.Anything).Return([]models.User{alice}, nil).Once()

	c := cache.NewUserCache(store, nil, 0)

	for i := 0; i < 2; i++ {
		got, err := c.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, alice, got)
	}

	byEmail, err := c.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	require.NoError(t, c.Update(ctx, alice))

	users, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	store.AssertExpectations(t)
}
