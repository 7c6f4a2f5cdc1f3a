//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"stayflow/internal/domain/booking"
	"stayflow/internal/infra"
	"stayflow/internal/usecase/queries"
	"stayflow/tests/common/builder"
	queriesmock "stayflow/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityQueriesTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	apartments *queriesmock.MockApartmentReadStore
	bookings   *queriesmock.MockBookingRangeReadStore
	blocked    *queriesmock.MockBlockedDateReadStore
	queries    queries.AvailabilityQueries
	ctx        context.Context
}

func TestAvailabilityQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityQueriesTestSuite))
}

func (s *AvailabilityQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.apartments = queriesmock.NewMockApartmentReadStore(s.ctrl)
	s.bookings = queriesmock.NewMockBookingRangeReadStore(s.ctrl)
	s.blocked = queriesmock.NewMockBlockedDateReadStore(s.ctrl)
	s.queries = queries.NewAvailabilityQueries(s.apartments, s.bookings, s.blocked, nil)
	s.ctx = context.Background()
}

func (s *AvailabilityQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AvailabilityQueriesTestSuite) candidateRange() booking.DateRange {
	rng, err := booking.ParseDateRange("2026-03-10", "2026-03-15")
	s.Require().NoError(err)
	return rng
}

func (s *AvailabilityQueriesTestSuite) TestCheck_Available() {
	apt, err := builder.NewApartmentBuilder().BuildDomain()
	s.Require().NoError(err)
	rng := s.candidateRange()

	s.apartments.EXPECT().FindByID(s.ctx, apt.ID()).Return(apt, nil)
	s.bookings.EXPECT().ActiveRanges(s.ctx, gomock.Any(), apt.ID()).Return(nil, nil)
	s.blocked.EXPECT().DaysInRange(s.ctx, gomock.Any(), apt.ID(), rng).Return(nil, nil)

	view, err := s.queries.Check(s.ctx, apt.ID(), rng)

	s.Require().NoError(err)
	s.True(view.Available)
	s.Empty(view.Reason)
	s.Equal("2026-03-10", view.StartDate)
	s.Equal("2026-03-15", view.EndDate)
	s.Equal(5, view.Nights)
}

func (s *AvailabilityQueriesTestSuite) TestCheck_Overlap() {
	apt, err := builder.NewApartmentBuilder().BuildDomain()
	s.Require().NoError(err)
	rng := s.candidateRange()
	taken, err := booking.ParseDateRange("2026-03-12", "2026-03-20")
	s.Require().NoError(err)

	s.apartments.EXPECT().FindByID(s.ctx, apt.ID()).Return(apt, nil)
	s.bookings.EXPECT().ActiveRanges(s.ctx, gomock.Any(), apt.ID()).Return([]booking.DateRange{taken}, nil)
	s.blocked.EXPECT().DaysInRange(s.ctx, gomock.Any(), apt.ID(), rng).Return(nil, nil)

	view, err := s.queries.Check(s.ctx, apt.ID(), rng)

	s.Require().NoError(err)
	s.False(view.Available)
	s.Equal("dates overlap an existing booking", view.Reason)
}

func (s *AvailabilityQueriesTestSuite) TestCheck_BlockedDay() {
	apt, err := builder.NewApartmentBuilder().BuildDomain()
	s.Require().NoError(err)
	rng := s.candidateRange()

	s.apartments.EXPECT().FindByID(s.ctx, apt.ID()).Return(apt, nil)
	s.bookings.EXPECT().ActiveRanges(s.ctx, gomock.Any(), apt.ID()).Return(nil, nil)
	s.blocked.EXPECT().DaysInRange(s.ctx, gomock.Any(), apt.ID(), rng).
		Return([]time.Time{time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)}, nil)

	view, err := s.queries.Check(s.ctx, apt.ID(), rng)

	s.Require().NoError(err)
	s.False(view.Available)
	s.Equal("dates include a blocked day", view.Reason)
}

func (s *AvailabilityQueriesTestSuite) TestCheck_InactiveApartment() {
	apt, err := builder.NewApartmentBuilder().With(func(b *builder.ApartmentBuilder) {
		b.Active = false
	}).BuildDomain()
	s.Require().NoError(err)

	s.apartments.EXPECT().FindByID(s.ctx, apt.ID()).Return(apt, nil)
	// Inactive apartments short-circuit; no range lookups happen.

	view, err := s.queries.Check(s.ctx, apt.ID(), s.candidateRange())

	s.Require().NoError(err)
	s.False(view.Available)
	s.Equal("apartment is not active", view.Reason)
}

func (s *AvailabilityQueriesTestSuite) TestCheck_UnknownApartment() {
	id := uuid.New()
	s.apartments.EXPECT().FindByID(s.ctx, id).
		Return(nil, infra.WrapRepoErr("apartment not found", nil, infra.KindNotFound))

	_, err := s.queries.Check(s.ctx, id, s.candidateRange())

	s.ErrorIs(err, queries.ErrApartmentNotFound)
}
