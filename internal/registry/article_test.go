package registry

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportspulse/internal/domain"
)

func articleIDs(articles []domain.Article) []int64 {
	return lo.Map(articles, func(a domain.Article, _ int) int64 { return a.ID })
}

func TestArticleRegistry_DefaultSeed(t *testing.T) {
	now := time.Now()
	r := NewArticleRegistry(DefaultArticles(now))

	all := r.All()
	assert.Equal(t, []int64{1, 2, 3}, articleIDs(all))
	assert.Equal(t, now.Add(-3*time.Hour), all[0].Date)
	assert.Equal(t, 2100, all[2].Views)
}

func TestArticleRegistry_Get(t *testing.T) {
	r := NewArticleRegistry(DefaultArticles(time.Now()))

	a, err := r.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "سارة محمد", a.Author)

	_, err = r.Get(42)
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)
}

func TestArticleRegistry_Featured(t *testing.T) {
	r := NewArticleRegistry(DefaultArticles(time.Now()))

	featured := r.Featured()
	assert.Equal(t, []int64{1, 3}, articleIDs(featured))
	for _, a := range featured {
		assert.True(t, a.Featured)
	}

	if diff := cmp.Diff(featured, r.Featured()); diff != "" {
		t.Errorf("Featured not idempotent (-first +second):\n%s", diff)
	}
}

func TestArticleRegistry_ByCategory(t *testing.T) {
	seed := []domain.Article{
		{ID: 1, Category: "Football"},
		{ID: 2, Category: "football"},
		{ID: 3, Category: "Basketball"},
		{ID: 4, Category: "Football"},
	}
	r := NewArticleRegistry(seed)

	tests := []struct {
		category string
		want     []int64
	}{
		{category: "Football", want: []int64{1, 4}},
		{category: "football", want: []int64{2}},
		{category: "Tennis", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, articleIDs(r.ByCategory(tt.category)))
		})
	}
}

func TestArticleRegistry_AddPrepends(t *testing.T) {
	r := NewArticleRegistry(DefaultArticles(time.Now()))
	prevHead := r.All()[0]

	before := time.Now()
	stored := r.Add(domain.Article{
		ID:       99,
		Title:    "New",
		Category: "كرة قدم",
		Date:     time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Views:    500,
		Featured: true,
	})

	assert.Equal(t, int64(4), stored.ID)
	assert.Equal(t, 0, stored.Views)
	assert.WithinDuration(t, before, stored.Date, time.Second)

	all := r.All()
	require.Len(t, all, 4)
	assert.Equal(t, stored, all[0])
	assert.Equal(t, prevHead, all[1])
	assert.Equal(t, []int64{4, 1, 3}, articleIDs(r.Featured()))
}

func TestArticleRegistry_AddSequentialIDs(t *testing.T) {
	r := NewArticleRegistry(nil)

	for i := 1; i <= 3; i++ {
		n := r.Len()
		a := r.Add(domain.Article{Title: "t"})
		assert.Equal(t, int64(n+1), a.ID)
	}
	assert.Equal(t, []int64{3, 2, 1}, articleIDs(r.All()))
}

func TestArticleRegistry_IDsNeverCollideWithSeed(t *testing.T) {
	r := NewArticleRegistry([]domain.Article{{ID: 10}, {ID: 2}})

	a := r.Add(domain.Article{})
	assert.Equal(t, int64(11), a.ID)
}

func TestArticleRegistry_AllReturnsCopy(t *testing.T) {
	r := NewArticleRegistry(DefaultArticles(time.Now()))

	all := r.All()
	all[0].Title = "changed"

	a, err := r.Get(1)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", a.Title)
}
