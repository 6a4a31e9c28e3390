package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"sportspulse/internal/domain"
	"sportspulse/internal/service/mocks"
)

type NewsServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	articles    *mocks.MockArticleRegistry
	publisher   *mocks.MockPublisher
	broadcaster *mocks.MockBroadcaster

	service *NewsService
}

func (s *NewsServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.articles = mocks.NewMockArticleRegistry(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)
	s.broadcaster = mocks.NewMockBroadcaster(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.service = NewNewsService(s.articles, s.publisher, s.broadcaster, logger)
}

func (s *NewsServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestNewsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NewsServiceTestSuite))
}

func (s *NewsServiceTestSuite) TestAdd_StoresAndAnnounces() {
	ctx := context.Background()
	input := domain.Article{Title: "Derby day", Category: "Football"}
	stored := domain.Article{ID: 4, Title: "Derby day", Category: "Football", Date: time.Now()}

	s.articles.EXPECT().Add(input).Return(stored)
	s.broadcaster.EXPECT().Broadcast(EventArticleCreated, stored)
	s.publisher.EXPECT().PublishArticle(ctx, &stored).Return(nil)

	got, err := s.service.Add(ctx, input)

	s.NoError(err)
	s.Equal(stored, got)
}

func (s *NewsServiceTestSuite) TestAdd_PublishFailureKeepsArticle() {
	ctx := context.Background()
	stored := domain.Article{ID: 5, Title: "Transfer news"}

	s.articles.EXPECT().Add(gomock.Any()).Return(stored)
	s.broadcaster.EXPECT().Broadcast(EventArticleCreated, stored)
	s.publisher.EXPECT().PublishArticle(ctx, gomock.Any()).Return(errors.New("connection reset"))

	got, err := s.service.Add(ctx, domain.Article{Title: "Transfer news"})

	s.NoError(err)
	s.Equal(int64(5), got.ID)
}

func (s *NewsServiceTestSuite) TestAdd_RejectsMissingFields() {
	tests := []struct {
		name    string
		article domain.Article
	}{
		{name: "no title", article: domain.Article{Category: "Football"}},
		{name: "blank title", article: domain.Article{Title: "  ", Category: "Football"}},
		{name: "no category", article: domain.Article{Title: "Derby day"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.Add(context.Background(), tt.article)
			s.ErrorIs(err, domain.ErrInvalidArticle)
		})
	}
}
