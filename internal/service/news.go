package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sportspulse/internal/domain"
)

const EventArticleCreated = "article_created"

type NewsService struct {
	articles    ArticleRegistry
	publisher   Publisher
	broadcaster Broadcaster
	logger      *slog.Logger
}

func NewNewsService(
	articles ArticleRegistry,
	publisher Publisher,
	broadcaster Broadcaster,
	logger *slog.Logger,
) *NewsService {
	return &NewsService{
		articles:    articles,
		publisher:   publisher,
		broadcaster: broadcaster,
		logger:      logger.With("component", "news"),
	}
}

// Add stores a new article and announces it. Title and category are
// required. Announcement failures are logged and never undo the insert.
func (s *NewsService) Add(ctx context.Context, article domain.Article) (domain.Article, error) {
	if strings.TrimSpace(article.Title) == "" {
		return domain.Article{}, fmt.Errorf("%w: title is required", domain.ErrInvalidArticle)
	}
	if strings.TrimSpace(article.Category) == "" {
		return domain.Article{}, fmt.Errorf("%w: category is required", domain.ErrInvalidArticle)
	}

	stored := s.articles.Add(article)

	s.logger.Info("article added",
		"article_id", stored.ID,
		"category", stored.Category,
		"featured", stored.Featured,
	)

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(EventArticleCreated, stored)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishArticle(ctx, &stored); err != nil {
			s.logger.Error("publish article", "article_id", stored.ID, "error", err)
		}
	}

	return stored, nil
}
