package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/domain/repository"
	apperrors "github.com/together-as-one/internal/pkg/errors"
	"github.com/together-as-one/internal/repository/postgres/testhelpers"
)

type SubscriptionRepositorySuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.SubscriptionRepository
	ctx    context.Context
}

func (s *SubscriptionRepositorySuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	_, err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.Require().NoError(err)

	s.repo = testhelpers.NewSubscriptionRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *SubscriptionRepositorySuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *SubscriptionRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func (s *SubscriptionRepositorySuite) TestCreate_DuplicateEmail() {
	area := "Sebokeng"
	first := &domain.Subscription{
		ID:        uuid.New(),
		Email:     "resident@example.org",
		Area:      &area,
		CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.repo.Create(s.ctx, first))

	second := &domain.Subscription{
		ID:        uuid.New(),
		Email:     "Resident@Example.org",
		CreatedAt: time.Now().UTC(),
	}
	err := s.repo.Create(s.ctx, second)
	s.ErrorIs(err, apperrors.ErrDuplicateSubscription)

	n, err := testhelpers.CountRows(s.ctx, s.testDB.DB, "subscriptions")
	s.Require().NoError(err)
	s.Equal(1, n)
}

func TestSubscriptionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SubscriptionRepositorySuite))
}
