package registry

import (
	"sync"
	"time"

	"github.com/samber/lo"

	"sportspulse/internal/domain"
)

// ArticleRegistry keeps news articles newest first. Ids are handed out by a
// counter that never goes backwards.
type ArticleRegistry struct {
	mu       sync.RWMutex
	articles []domain.Article
	nextID   int64
	now      func() time.Time
}

func NewArticleRegistry(seed []domain.Article) *ArticleRegistry {
	r := &ArticleRegistry{now: time.Now}
	r.Initialize(seed)
	return r
}

// Initialize replaces all state with the seed articles, keeping their order.
func (r *ArticleRegistry) Initialize(seed []domain.Article) {
	articles := make([]domain.Article, len(seed))
	copy(articles, seed)

	next := int64(len(articles))
	for _, a := range articles {
		next = max(next, a.ID)
	}

	r.mu.Lock()
	r.articles = articles
	r.nextID = next + 1
	r.mu.Unlock()
}

func (r *ArticleRegistry) Get(id int64) (domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := lo.Find(r.articles, func(a domain.Article) bool { return a.ID == id })
	if !ok {
		return domain.Article{}, domain.ErrArticleNotFound
	}
	return a, nil
}

func (r *ArticleRegistry) All() []domain.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Article, len(r.articles))
	copy(out, r.articles)
	return out
}

func (r *ArticleRegistry) Featured() []domain.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Filter(r.articles, func(a domain.Article, _ int) bool { return a.Featured })
}

// ByCategory matches the category exactly, case included.
func (r *ArticleRegistry) ByCategory(category string) []domain.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Filter(r.articles, func(a domain.Article, _ int) bool { return a.Category == category })
}

// Add stores the article at the head of the list. The id, date and view
// count supplied by the caller are overwritten.
func (r *ArticleRegistry) Add(article domain.Article) domain.Article {
	r.mu.Lock()
	defer r.mu.Unlock()

	article.ID = r.nextID
	article.Date = r.now()
	article.Views = 0
	r.nextID++

	r.articles = append([]domain.Article{article}, r.articles...)
	return article
}

func (r *ArticleRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.articles)
}
