package memory

import (
	"PressLink-Backend/internal/domain"
	"PressLink-Backend/internal/repository"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_DuplicateShortID(t *testing.T) {
	storage := New()
	ctx := context.Background()

	err := storage.Create(ctx, &domain.ShortLink{ShortID: "abc123", ArticleID: "a1"})
	require.NoError(t, err)

	err = storage.Create(ctx, &domain.ShortLink{ShortID: "abc123", ArticleID: "a2"})
	assert.ErrorIs(t, err, repository.ErrShortIDExists)
}

func TestFindByShortID(t *testing.T) {
	storage := New()
	ctx := context.Background()

	require.NoError(t, storage.Create(ctx, &domain.ShortLink{ShortID: "abc123", ArticleID: "a1"}))

	link, err := storage.FindByShortID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "a1", link.ArticleID)
	assert.NotZero(t, link.ID)
	assert.False(t, link.CreatedAt.IsZero())

	_, err = storage.FindByShortID(ctx, "zzzzzz")
	assert.ErrorIs(t, err, repository.ErrLinkNotFound)
}

func TestFindByArticle(t *testing.T) {
	storage := New()
	ctx := context.Background()

	require.NoError(t, storage.Create(ctx, &domain.ShortLink{ShortID: "abc123", ArticleID: "a1"}))

	link, err := storage.FindByArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "abc123", link.ShortID)

	_, err = storage.FindByArticle(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrLinkNotFound)
}

func TestIncrementClicks_Concurrent(t *testing.T) {
	storage := New()
	ctx := context.Background()

	link := &domain.ShortLink{ShortID: "abc123", ArticleID: "a1"}
	require.NoError(t, storage.Create(ctx, link))

	const concurrent = 100

	var wg sync.WaitGroup
	wg.Add(concurrent)
	for i := 0; i < concurrent; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, storage.IncrementClicks(ctx, link.ID))
		}()
	}
	wg.Wait()

	found, err := storage.FindByShortID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(concurrent), found.Clicks)
}

func TestIncrementClicks_UnknownLink(t *testing.T) {
	storage := New()

	err := storage.IncrementClicks(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrLinkNotFound)
}

func TestList_Pagination(t *testing.T) {
	storage := New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		link := &domain.ShortLink{
			ShortID:   fmt.Sprintf("code%02d", i),
			ArticleID: fmt.Sprintf("a%d", i),
		}
		require.NoError(t, storage.Create(ctx, link))
	}

	page, total, err := storage.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)

	page, total, err = storage.List(ctx, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 1)

	page, total, err = storage.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, page)
}

func TestRecordClick_AndAggregate(t *testing.T) {
	storage := New()
	ctx := context.Background()

	link := &domain.ShortLink{ShortID: "abc123", ArticleID: "a1"}
	require.NoError(t, storage.Create(ctx, link))

	desktop := "desktop"
	mobile := "mobile"
	require.NoError(t, storage.RecordClick(ctx, &domain.Click{LinkID: link.ID, DeviceType: &desktop}))
	require.NoError(t, storage.RecordClick(ctx, &domain.Click{LinkID: link.ID, DeviceType: &desktop}))
	require.NoError(t, storage.RecordClick(ctx, &domain.Click{LinkID: link.ID, DeviceType: &mobile}))
	require.NoError(t, storage.RecordClick(ctx, &domain.Click{LinkID: link.ID}))

	byDevice, err := storage.GetClicksByDevice(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byDevice["desktop"])
	assert.Equal(t, int64(1), byDevice["mobile"])
	assert.Equal(t, int64(1), byDevice["unknown"])
}
