package postgres

import (
	"PressLink-Backend/internal/domain"
	"PressLink-Backend/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupTestDB starts a disposable PostgreSQL container and migrates the
// schema. Skipped when no container runtime is available.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("presslink_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&domain.ShortLink{}, &domain.Click{}))

	return db
}

func TestPostgresStorage_LinkRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	storage := New(db, zap.NewNop())
	ctx := context.Background()

	link := &domain.ShortLink{ShortID: "abc123", ArticleID: "a1"}
	require.NoError(t, storage.Create(ctx, link))
	assert.NotZero(t, link.ID)

	// The unique index is the only collision signal.
	err := storage.Create(ctx, &domain.ShortLink{ShortID: "abc123", ArticleID: "a2"})
	assert.ErrorIs(t, err, repository.ErrShortIDExists)

	found, err := storage.FindByShortID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "a1", found.ArticleID)

	found, err = storage.FindByArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "abc123", found.ShortID)

	_, err = storage.FindByShortID(ctx, "zzzzzz")
	assert.ErrorIs(t, err, repository.ErrLinkNotFound)

	require.NoError(t, storage.IncrementClicks(ctx, link.ID))
	require.NoError(t, storage.IncrementClicks(ctx, link.ID))

	found, err = storage.FindByShortID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.Clicks)

	links, total, err := storage.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, links, 1)
}

func TestPostgresStorage_Clicks(t *testing.T) {
	db := setupTestDB(t)
	storage := New(db, zap.NewNop())
	ctx := context.Background()

	link := &domain.ShortLink{ShortID: "def456", ArticleID: "b1"}
	require.NoError(t, storage.Create(ctx, link))

	mobile := "mobile"
	ua := "Mozilla/5.0 (iPhone)"
	require.NoError(t, storage.RecordClick(ctx, &domain.Click{
		LinkID:     link.ID,
		DeviceType: &mobile,
		UserAgent:  &ua,
	}))
	require.NoError(t, storage.RecordClick(ctx, &domain.Click{LinkID: link.ID, DeviceType: &mobile}))

	byDevice, err := storage.GetClicksByDevice(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byDevice["mobile"])
}
