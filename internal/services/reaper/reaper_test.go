package reaper

import (
	"context"
	"errors"
	"testing"
	"time"

	"wealthcheck/internal/config"
	"wealthcheck/internal/models"
	"wealthcheck/internal/repositories"
	"wealthcheck/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func defaultConfig() config.ReaperConfig {
	return config.ReaperConfig{
		Enabled:   true,
		Retention: 7 * 24 * time.Hour,
		RunAt:     "03:00",
		TimeZone:  "Asia/Manila",
	}
}

func TestNextRun(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	at := clock{hour: 3}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"before run time", time.Date(2024, 5, 1, 1, 0, 0, 0, manila), time.Date(2024, 5, 1, 3, 0, 0, 0, manila)},
		{"exactly at run time", time.Date(2024, 5, 1, 3, 0, 0, 0, manila), time.Date(2024, 5, 2, 3, 0, 0, 0, manila)},
		{"after run time", time.Date(2024, 5, 1, 22, 0, 0, 0, manila), time.Date(2024, 5, 2, 3, 0, 0, 0, manila)},
		{"utc input", time.Date(2024, 12, 31, 20, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 3, 0, 0, 0, manila)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(nextRun(tt.now, at, manila)), "got %s", nextRun(tt.now, at, manila))
		})
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	for name, mutate := range map[string]func(*config.ReaperConfig){
		"bad clock":    func(c *config.ReaperConfig) { c.RunAt = "25:00" },
		"no colon":     func(c *config.ReaperConfig) { c.RunAt = "0300" },
		"bad zone":     func(c *config.ReaperConfig) { c.TimeZone = "Mars/Olympus" },
		"no retention": func(c *config.ReaperConfig) { c.Retention = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(&cfg)
			_, err := New(nil, cfg)
			assert.Error(t, err)
		})
	}
}

type MockCleanup struct {
	mock.Mock
}

func (m *MockCleanup) RemoveTransactions(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCleanup) RemoveWallets(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCleanup) RemoveCategories(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func TestRunOnce_SweepsAreIndependent(t *testing.T) {
	now := time.Date(2024, 5, 10, 3, 0, 0, 0, time.UTC)
	cutoff := now.Add(-7 * 24 * time.Hour)

	repo := new(MockCleanup)
	repo.On("RemoveTransactions", mock.Anything, cutoff).Return(int64(4), nil)
	repo.On("RemoveWallets", mock.Anything, cutoff).Return(int64(0), errors.New("lock timeout"))
	repo.On("RemoveCategories", mock.Anything, cutoff).Return(int64(2), nil)

	r, err := New(repo, defaultConfig())
	require.NoError(t, err)
	r.now = func() time.Time { return now }

	res, err := r.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wallets: lock timeout")
	assert.Equal(t, int64(4), res.Transactions)
	assert.Equal(t, int64(2), res.Categories)
	assert.NotEmpty(t, res.RunID)
	repo.AssertExpectations(t)
}

func TestRunOnce_RemovesOnlyExpiredSoftDeletedRows(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedAccount(t, db, "owner@example.com")
	old := time.Now().Add(-30 * 24 * time.Hour)

	expired := testutil.SeedWallet(t, db, user.ID, "Old", "0", old)
	recent := testutil.SeedWallet(t, db, user.ID, "Recent", "0", old)
	live := testutil.SeedWallet(t, db, user.ID, "Live", "0", old)

	require.NoError(t, db.Model(&models.Wallet{}).Where("id = ?", expired.ID).
		UpdateColumns(map[string]interface{}{"soft_deleted": true, "updated_at": old}).Error)
	require.NoError(t, db.Model(&models.Wallet{}).Where("id = ?", recent.ID).
		UpdateColumns(map[string]interface{}{"soft_deleted": true, "updated_at": time.Now()}).Error)

	r, err := New(repositories.NewCleanupRepository(db), defaultConfig())
	require.NoError(t, err)

	res, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Wallets)

	var remaining []uint
	require.NoError(t, db.Model(&models.Wallet{}).Order("id").Pluck("id", &remaining).Error)
	assert.Equal(t, []uint{recent.ID, live.ID}, remaining)

	// Re-running is a no-op.
	res, err = r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Wallets)
}

func TestStartStop(t *testing.T) {
	repo := new(MockCleanup)
	r, err := New(repo, defaultConfig())
	require.NoError(t, err)

	r.Start(context.Background())
	r.Start(context.Background())
	r.Stop()
	r.Stop()

	repo.AssertNotCalled(t, "RemoveTransactions", mock.Anything, mock.Anything)
}
