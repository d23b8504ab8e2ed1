package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jalaali-calendar-bot/internal/models"
)

func TestGormUserRepository_CreateAndGet(t *testing.T) {
	repo, err := NewGormUserRepository(newTestDB(t), quietLogger())
	require.NoError(t, err)

	user := &models.User{ChatID: 100, Username: "sara", FirstName: "Sara", Role: models.RoleClient}
	require.NoError(t, repo.Create(user))
	assert.NotZero(t, user.ID)

	assert.Error(t, repo.Create(&models.User{ChatID: 100}), "duplicate chat id")

	got, err := repo.GetByChatID(100)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "sara", got.Username)

	missing, err := repo.GetByChatID(999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormUserRepository_UpdateAndRoles(t *testing.T) {
	repo, err := NewGormUserRepository(newTestDB(t), quietLogger())
	require.NoError(t, err)

	require.NoError(t, repo.Create(&models.User{ChatID: 1, FirstName: "A", Role: models.RoleClient}))
	require.NoError(t, repo.Create(&models.User{ChatID: 2, FirstName: "B", Role: models.RoleClient}))

	require.NoError(t, repo.Update(&models.User{ChatID: 1, FirstName: "Ali", Username: "ali"}))
	got, err := repo.GetByChatID(1)
	require.NoError(t, err)
	assert.Equal(t, "Ali", got.FirstName)
	assert.Equal(t, "ali", got.Username)

	assert.ErrorIs(t, repo.Update(&models.User{ChatID: 3}), ErrUserNotFound)

	require.NoError(t, repo.UpdateRole(2, models.RoleAdmin))
	assert.ErrorIs(t, repo.UpdateRole(3, models.RoleAdmin), ErrUserNotFound)

	admins, err := repo.GetAdmins()
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, int64(2), admins[0].ChatID)

	total, adminCount, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, adminCount)

	exists, err := repo.Exists(2)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGormUserRepository_GetOrCreate(t *testing.T) {
	repo, err := NewGormUserRepository(newTestDB(t), quietLogger())
	require.NoError(t, err)

	first, created, err := repo.GetOrCreate(&models.User{ChatID: 7, FirstName: "Sara", Role: models.RoleClient})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, first.ID)

	again, created, err := repo.GetOrCreate(&models.User{ChatID: 7, FirstName: "Other", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Sara", again.FirstName)
	assert.Equal(t, models.RoleClient, again.Role)

	assert.ErrorIs(t, repo.Create(&models.User{ChatID: 7}), ErrUserExists)
}

func TestGormUserRepository_GetOrCreateConcurrent(t *testing.T) {
	repo, err := NewGormUserRepository(newFileTestDB(t), quietLogger())
	require.NoError(t, err)

	const workers = 20
	var (
		wg      sync.WaitGroup
		ids     = make([]uint, workers)
		created = make([]bool, workers)
		errs    = make([]error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, c, err := repo.GetOrCreate(&models.User{ChatID: 42, Role: models.RoleClient})
			errs[i], created[i] = err, c
			if u != nil {
				ids[i] = u.ID
			}
		}(i)
	}
	wg.Wait()

	creators := 0
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
		if created[i] {
			creators++
		}
	}
	assert.Equal(t, 1, creators)

	total, _, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
