//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"sportspulse/internal/domain"
	"sportspulse/migrations"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(migrations.Run(db.DB))
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM preferences")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM newsletter_subscribers")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestPreferenceStore_Get_Default() {
	store := NewPreferenceStore(s.db)

	pref, err := store.Get(s.ctx, "unknown-client")
	s.NoError(err)
	s.Equal("unknown-client", pref.ClientID)
	s.False(pref.DarkMode)
	s.True(pref.UpdatedAt.IsZero())
}

func (s *PostgresIntegrationSuite) TestPreferenceStore_Upsert() {
	store := NewPreferenceStore(s.db)

	pref := &domain.Preference{ClientID: "client-1", DarkMode: true}
	s.NoError(store.Upsert(s.ctx, pref))
	s.False(pref.UpdatedAt.IsZero())

	got, err := store.Get(s.ctx, "client-1")
	s.NoError(err)
	s.True(got.DarkMode)

	pref.DarkMode = false
	s.NoError(store.Upsert(s.ctx, pref))

	got, err = store.Get(s.ctx, "client-1")
	s.NoError(err)
	s.False(got.DarkMode)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM preferences")
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestSubscriberStore_Add_Idempotent() {
	store := NewSubscriberStore(s.db)

	first := &domain.Subscriber{Email: "fan@example.com"}
	created, err := store.Add(s.ctx, first)
	s.NoError(err)
	s.True(created)
	s.Greater(first.ID, int64(0))
	s.False(first.CreatedAt.IsZero())

	again := &domain.Subscriber{Email: "fan@example.com"}
	created, err = store.Add(s.ctx, again)
	s.NoError(err)
	s.False(created)
	s.Zero(again.ID)

	subs, err := store.List(s.ctx)
	s.NoError(err)
	s.Len(subs, 1)
	s.Equal("fan@example.com", subs[0].Email)
}

func (s *PostgresIntegrationSuite) TestSubscriberStore_List_NewestFirst() {
	store := NewSubscriberStore(s.db)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := store.Add(s.ctx, &domain.Subscriber{Email: email})
		s.NoError(err)
	}

	subs, err := store.List(s.ctx)
	s.NoError(err)
	s.Require().Len(subs, 3)
	s.Equal("c@example.com", subs[0].Email)
	s.Equal("a@example.com", subs[2].Email)
}

func (s *PostgresIntegrationSuite) TestPreferenceStore_Toggle() {
	store := NewPreferenceStore(s.db)

	pref, err := store.Toggle(s.ctx, "toggle-client")
	s.NoError(err)
	s.Equal("toggle-client", pref.ClientID)
	s.True(pref.DarkMode)
	s.False(pref.UpdatedAt.IsZero())

	pref, err = store.Toggle(s.ctx, "toggle-client")
	s.NoError(err)
	s.False(pref.DarkMode)
}

func (s *PostgresIntegrationSuite) TestPreferenceStore_ConcurrentTogglesAreNotLost() {
	store := NewPreferenceStore(s.db)

	const toggles = 20
	var wg sync.WaitGroup
	errs := make(chan error, toggles)
	for range toggles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Toggle(s.ctx, "racy-client")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}

	pref, err := store.Get(s.ctx, "racy-client")
	s.NoError(err)
	s.False(pref.DarkMode, "an even number of toggles ends where it started")
}
