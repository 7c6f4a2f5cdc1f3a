//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"stayflow/internal/domain/booking"
	"stayflow/internal/domain/user"
	"stayflow/internal/infra"
	"stayflow/internal/pkg/clock"
	"stayflow/internal/usecase/commands"
	"stayflow/internal/usecase/queries"
	"stayflow/internal/usecase/shared"
	"stayflow/tests/common/builder"
	"stayflow/tests/common/dbtest"
	commandsmock "stayflow/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	bookings   *commandsmock.MockBookingRepository
	apartments *commandsmock.MockApartmentRepository
	hosts      *commandsmock.MockHostRepository
	blocked    *commandsmock.MockBlockedDateRepository
	checkout   *commandsmock.MockCheckoutGateway
	mailer     *commandsmock.MockMailer
	pool       *dbtest.FakePool
	commands   commands.BookingCommands
	ctx        context.Context
}

func TestBookingCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.bookings = commandsmock.NewMockBookingRepository(s.ctrl)
	s.apartments = commandsmock.NewMockApartmentRepository(s.ctrl)
	s.hosts = commandsmock.NewMockHostRepository(s.ctrl)
	s.blocked = commandsmock.NewMockBlockedDateRepository(s.ctrl)
	s.checkout = commandsmock.NewMockCheckoutGateway(s.ctrl)
	s.mailer = commandsmock.NewMockMailer(s.ctrl)
	s.pool = &dbtest.FakePool{}

	factory := booking.NewFactory(clock.NewMockClock(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)))
	s.commands = commands.NewBookingCommands(
		s.bookings, s.apartments, s.hosts, s.blocked,
		s.checkout, s.mailer, factory, s.pool,
	)
	s.ctx = context.Background()
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BookingCommandsTestSuite) TestCreateBooking_PayOnArrival() {
	aptBuilder := builder.NewApartmentBuilder()
	apt, err := aptBuilder.BuildDomain()
	s.Require().NoError(err)
	// No payout account: pay on arrival.
	hostEntity := builder.NewHostBuilder().BuildDomain()

	params := commands.CreateBookingParams{
		ApartmentID: apt.ID(),
		GuestName:   "Ada Lovelace",
		GuestEmail:  "ada@example.com",
		StartDate:   "2026-03-01",
		EndDate:     "2026-03-04",
		NumGuests:   2,
	}
	bookingID := uuid.New()
	view := builder.NewBookingViewBuilder().With(func(b *builder.BookingViewBuilder) {
		b.ID = bookingID
		b.ApartmentID = apt.ID()
		b.Status = "confirmed"
	}).BuildView()

	s.apartments.EXPECT().FindByID(s.ctx, apt.ID()).Return(apt, nil)
	s.hosts.EXPECT().FindByID(s.ctx, apt.HostID()).Return(hostEntity, nil)
	s.bookings.EXPECT().ActiveRanges(s.ctx, gomock.Any(), apt.ID()).Return(nil, nil)
	s.blocked.EXPECT().DaysInRange(s.ctx, gomock.Any(), apt.ID(), gomock.Any()).Return(nil, nil)
	s.bookings.EXPECT().Create(s.ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, b *booking.Booking) (uuid.UUID, error) {
			s.Equal(booking.StatusPending, b.Status())
			s.Equal(int64(32000), b.Total().Cents())
			return bookingID, nil
		})
	s.bookings.EXPECT().UpdateStatus(s.ctx, s.pool, bookingID, booking.StatusConfirmed).Return(nil)
	s.bookings.EXPECT().FindByID(s.ctx, bookingID).Return(view, nil)
	s.mailer.EXPECT().Send(view.GuestEmail, gomock.Any(), "booking_received", gomock.Any()).Return(nil)

	result, err := s.commands.CreateBooking(s.ctx, params)

	s.Require().NoError(err)
	s.Require().NotNil(result.Booking)
	s.Equal(bookingID, result.Booking.ID)
	s.Empty(result.CheckoutURL)
	s.Equal(1, s.pool.CommitCount)
	s.Equal(0, s.pool.RollbackCount)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_OnlineCheckout() {
	apt, err := builder.NewApartmentBuilder().BuildDomain()
	s.Require().NoError(err)
	hostEntity := builder.NewHostBuilder().WithPayoutAccount("acct_123").BuildDomain()

	params := commands.CreateBookingParams{
		ApartmentID: apt.ID(),
		GuestName:   "Ada Lovelace",
		GuestEmail:  "ada@example.com",
		StartDate:   "2026-03-01",
		EndDate:     "2026-03-04",
		NumGuests:   2,
	}
	bookingID := uuid.New()

	s.apartments.EXPECT().FindByID(s.ctx, apt.ID()).Return(apt, nil)
	s.hosts.EXPECT().FindByID(s.ctx, apt.HostID()).Return(hostEntity, nil)
	s.bookings.EXPECT().ActiveRanges(s.ctx, gomock.Any(), apt.ID()).Return(nil, nil)
	s.blocked.EXPECT().DaysInRange(s.ctx, gomock.Any(), apt.ID(), gomock.Any()).Return(nil, nil)
	s.bookings.EXPECT().Create(s.ctx, gomock.Any(), gomock.Any()).Return(bookingID, nil)
	s.checkout.EXPECT().CreateSession(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req commands.CheckoutRequest) (*commands.CheckoutSession, error) {
			s.Equal(bookingID, req.BookingID)
			s.Equal(int64(32000), req.AmountCents)
			s.Equal("acct_123", req.ConnectedAccountID)
			s.Equal("ada@example.com", req.GuestEmail)
			return &commands.CheckoutSession{ID: "cs_test_42", URL: "https://checkout.example/cs_test_42"}, nil
		})
	s.bookings.EXPECT().AttachPaymentSession(s.ctx, bookingID, "cs_test_42").Return(nil)

	result, err := s.commands.CreateBooking(s.ctx, params)

	s.Require().NoError(err)
	s.Nil(result.Booking)
	s.Equal("https://checkout.example/cs_test_42", result.CheckoutURL)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_SessionFailureKeepsPendingBooking() {
	apt, err := builder.NewApartmentBuilder().BuildDomain()
	s.Require().NoError(err)
	hostEntity := builder.NewHostBuilder().WithPayoutAccount("acct_123").BuildDomain()

	params := commands.CreateBookingParams{
		ApartmentID: apt.ID(),
		GuestName:   "Ada Lovelace",
		GuestEmail:  "ada@example.com",
		StartDate:   "2026-03-01",
		EndDate:     "2026-03-04",
		NumGuests:   2,
	}

	s.apartments.EXPECT().FindByID(s.ctx, apt.ID()).Return(apt, nil)
	s.hosts.EXPECT().FindByID(s.ctx, apt.HostID()).Return(hostEntity, nil)
	s.bookings.EXPECT().ActiveRanges(s.ctx, gomock.Any(), apt.ID()).Return(nil, nil)
	s.blocked.EXPECT().DaysInRange(s.ctx, gomock.Any(), apt.ID(), gomock.Any()).Return(nil, nil)
	s.bookings.EXPECT().Create(s.ctx, gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
	s.checkout.EXPECT().CreateSession(s.ctx, gomock.Any()).
		Return(nil, context.DeadlineExceeded)

	_, err = s.commands.CreateBooking(s.ctx, params)

	s.ErrorIs(err, commands.ErrPaymentSessionFailed)
	// The insert transaction already committed; the pending booking holds the dates.
	s.Equal(1, s.pool.CommitCount)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_OverlapRejected() {
	apt, err := builder.NewApartmentBuilder().BuildDomain()
	s.Require().NoError(err)
	hostEntity := builder.NewHostBuilder().BuildDomain()

	params := commands.CreateBookingParams{
		ApartmentID: apt.ID(),
		GuestName:   "Ada Lovelace",
		GuestEmail:  "ada@example.com",
		StartDate:   "2026-03-01",
		EndDate:     "2026-03-04",
		NumGuests:   2,
	}
	taken, err := booking.ParseDateRange("2026-03-03", "2026-03-06")
	s.Require().NoError(err)

	s.apartments.EXPECT().FindByID(s.ctx, apt.ID()).Return(apt, nil)
	s.hosts.EXPECT().FindByID(s.ctx, apt.HostID()).Return(hostEntity, nil)
	s.bookings.EXPECT().ActiveRanges(s.ctx, gomock.Any(), apt.ID()).Return([]booking.DateRange{taken}, nil)
	s.blocked.EXPECT().DaysInRange(s.ctx, gomock.Any(), apt.ID(), gomock.Any()).Return(nil, nil)

	_, err = s.commands.CreateBooking(s.ctx, params)

	s.ErrorIs(err, commands.ErrBookingConflict)
	s.Equal(1, s.pool.RollbackCount)
	s.Equal(0, s.pool.CommitCount)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_ExclusionConstraintRace() {
	apt, err := builder.NewApartmentBuilder().BuildDomain()
	s.Require().NoError(err)
	hostEntity := builder.NewHostBuilder().BuildDomain()

	params := commands.CreateBookingParams{
		ApartmentID: apt.ID(),
		GuestName:   "Ada Lovelace",
		GuestEmail:  "ada@example.com",
		StartDate:   "2026-03-01",
		EndDate:     "2026-03-04",
		NumGuests:   2,
	}

	s.apartments.EXPECT().FindByID(s.ctx, apt.ID()).Return(apt, nil)
	s.hosts.EXPECT().FindByID(s.ctx, apt.HostID()).Return(hostEntity, nil)
	s.bookings.EXPECT().ActiveRanges(s.ctx, gomock.Any(), apt.ID()).Return(nil, nil)
	s.blocked.EXPECT().DaysInRange(s.ctx, gomock.Any(), apt.ID(), gomock.Any()).Return(nil, nil)
	s.bookings.EXPECT().Create(s.ctx, gomock.Any(), gomock.Any()).
		Return(uuid.Nil, infra.WrapRepoErr("insert booking", nil, infra.KindConflict))

	_, err = s.commands.CreateBooking(s.ctx, params)

	s.ErrorIs(err, commands.ErrBookingConflict)
	s.Equal(1, s.pool.RollbackCount)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_BlockedDayRejected() {
	apt, err := builder.NewApartmentBuilder().BuildDomain()
	s.Require().NoError(err)
	hostEntity := builder.NewHostBuilder().BuildDomain()

	params := commands.CreateBookingParams{
		ApartmentID: apt.ID(),
		GuestName:   "Ada Lovelace",
		GuestEmail:  "ada@example.com",
		StartDate:   "2026-03-01",
		EndDate:     "2026-03-04",
		NumGuests:   2,
	}
	blockedDay := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	s.apartments.EXPECT().FindByID(s.ctx, apt.ID()).Return(apt, nil)
	s.hosts.EXPECT().FindByID(s.ctx, apt.HostID()).Return(hostEntity, nil)
	s.bookings.EXPECT().ActiveRanges(s.ctx, gomock.Any(), apt.ID()).Return(nil, nil)
	s.blocked.EXPECT().DaysInRange(s.ctx, gomock.Any(), apt.ID(), gomock.Any()).Return([]time.Time{blockedDay}, nil)

	_, err = s.commands.CreateBooking(s.ctx, params)

	s.ErrorIs(err, commands.ErrBookingConflict)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_ValidationFailures() {
	apt, err := builder.NewApartmentBuilder().BuildDomain()
	s.Require().NoError(err)

	base := commands.CreateBookingParams{
		ApartmentID: apt.ID(),
		GuestName:   "Ada Lovelace",
		GuestEmail:  "ada@example.com",
		StartDate:   "2026-03-01",
		EndDate:     "2026-03-04",
		NumGuests:   2,
	}

	s.Run("reversed dates", func() {
		params := base
		params.StartDate, params.EndDate = params.EndDate, params.StartDate
		_, err := s.commands.CreateBooking(s.ctx, params)
		s.ErrorIs(err, commands.ErrInvalidDateRange)
	})

	s.Run("missing guest email", func() {
		params := base
		params.GuestEmail = ""
		_, err := s.commands.CreateBooking(s.ctx, params)
		s.ErrorIs(err, commands.ErrInvalidGuest)
	})

	s.Run("too many guests", func() {
		params := base
		params.NumGuests = 99
		s.apartments.EXPECT().FindByID(s.ctx, apt.ID()).Return(apt, nil)
		_, err := s.commands.CreateBooking(s.ctx, params)
		s.ErrorIs(err, commands.ErrCapacityExceeded)
	})

	s.Run("stay too long", func() {
		params := base
		params.EndDate = "2026-05-01"
		s.apartments.EXPECT().FindByID(s.ctx, apt.ID()).Return(apt, nil)
		_, err := s.commands.CreateBooking(s.ctx, params)
		s.ErrorIs(err, commands.ErrStayLengthInvalid)
	})
}

func (s *BookingCommandsTestSuite) TestCreateBooking_ApartmentLookup() {
	id := uuid.New()
	params := commands.CreateBookingParams{
		ApartmentID: id,
		GuestName:   "Ada Lovelace",
		GuestEmail:  "ada@example.com",
		StartDate:   "2026-03-01",
		EndDate:     "2026-03-04",
		NumGuests:   2,
	}

	s.Run("unknown apartment", func() {
		s.apartments.EXPECT().FindByID(s.ctx, id).
			Return(nil, infra.WrapRepoErr("apartment not found", nil, infra.KindNotFound))
		_, err := s.commands.CreateBooking(s.ctx, params)
		s.ErrorIs(err, commands.ErrApartmentNotFound)
	})

	s.Run("inactive apartment", func() {
		apt, err := builder.NewApartmentBuilder().With(func(b *builder.ApartmentBuilder) {
			b.ID = id
			b.Active = false
		}).BuildDomain()
		s.Require().NoError(err)
		s.apartments.EXPECT().FindByID(s.ctx, id).Return(apt, nil)
		_, err = s.commands.CreateBooking(s.ctx, params)
		s.ErrorIs(err, commands.ErrApartmentInactive)
	})
}

func (s *BookingCommandsTestSuite) TestCancelBooking() {
	bookingID := uuid.New()
	hostUserID := uuid.New()
	hostActor := shared.Actor{ID: hostUserID, Role: user.RoleHost}

	s.Run("host cancels own booking", func() {
		s.bookings.EXPECT().LockForUpdate(s.ctx, gomock.Any(), bookingID).
			Return(&queries.BookingLock{ID: bookingID, HostUserID: hostUserID, Status: booking.StatusConfirmed}, nil)
		s.bookings.EXPECT().UpdateStatus(s.ctx, gomock.Any(), bookingID, booking.StatusCanceled).Return(nil)

		s.NoError(s.commands.CancelBooking(s.ctx, hostActor, bookingID))
	})

	s.Run("guest cannot cancel", func() {
		guestActor := shared.Actor{ID: uuid.New(), Role: user.RoleGuest}
		err := s.commands.CancelBooking(s.ctx, guestActor, bookingID)
		s.ErrorIs(err, commands.ErrGuestsCannotCancel)
	})

	s.Run("host cannot cancel another host's booking", func() {
		s.bookings.EXPECT().LockForUpdate(s.ctx, gomock.Any(), bookingID).
			Return(&queries.BookingLock{ID: bookingID, HostUserID: uuid.New(), Status: booking.StatusConfirmed}, nil)

		err := s.commands.CancelBooking(s.ctx, hostActor, bookingID)
		s.ErrorIs(err, commands.ErrNotBookingOwner)
	})

	s.Run("paid booking cannot be canceled", func() {
		s.bookings.EXPECT().LockForUpdate(s.ctx, gomock.Any(), bookingID).
			Return(&queries.BookingLock{ID: bookingID, HostUserID: hostUserID, Status: booking.StatusPaid}, nil)

		err := s.commands.CancelBooking(s.ctx, hostActor, bookingID)
		s.ErrorIs(err, commands.ErrIllegalTransition)
	})

	s.Run("unknown booking", func() {
		s.bookings.EXPECT().LockForUpdate(s.ctx, gomock.Any(), bookingID).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))

		err := s.commands.CancelBooking(s.ctx, hostActor, bookingID)
		s.ErrorIs(err, commands.ErrBookingNotFound)
	})
}

func (s *BookingCommandsTestSuite) TestBulkUpdateStatus() {
	hostUserID := uuid.New()
	hostActor := shared.Actor{ID: hostUserID, Role: user.RoleHost}
	first := uuid.New()
	second := uuid.New()

	s.Run("applies all changes in one transaction", func() {
		s.pool = &dbtest.FakePool{}
		s.resetCommands()

		s.bookings.EXPECT().LockForUpdate(s.ctx, gomock.Any(), first).
			Return(&queries.BookingLock{ID: first, HostUserID: hostUserID, Status: booking.StatusPending}, nil)
		s.bookings.EXPECT().UpdateStatus(s.ctx, gomock.Any(), first, booking.StatusConfirmed).Return(nil)
		s.bookings.EXPECT().LockForUpdate(s.ctx, gomock.Any(), second).
			Return(&queries.BookingLock{ID: second, HostUserID: hostUserID, Status: booking.StatusConfirmed}, nil)
		s.bookings.EXPECT().UpdateStatus(s.ctx, gomock.Any(), second, booking.StatusCanceled).Return(nil)

		err := s.commands.BulkUpdateStatus(s.ctx, hostActor, []commands.StatusChange{
			{BookingID: first, Status: booking.StatusConfirmed},
			{BookingID: second, Status: booking.StatusCanceled},
		})

		s.NoError(err)
		s.Equal(1, s.pool.BeginCount)
		s.Equal(1, s.pool.CommitCount)
	})

	s.Run("first failure aborts the whole batch", func() {
		s.pool = &dbtest.FakePool{}
		s.resetCommands()

		s.bookings.EXPECT().LockForUpdate(s.ctx, gomock.Any(), first).
			Return(&queries.BookingLock{ID: first, HostUserID: hostUserID, Status: booking.StatusPaid}, nil)

		err := s.commands.BulkUpdateStatus(s.ctx, hostActor, []commands.StatusChange{
			{BookingID: first, Status: booking.StatusConfirmed},
			{BookingID: second, Status: booking.StatusCanceled},
		})

		s.ErrorIs(err, commands.ErrIllegalTransition)
		s.Equal(1, s.pool.RollbackCount)
		s.Equal(0, s.pool.CommitCount)
	})

	s.Run("admin manages any host's bookings", func() {
		s.pool = &dbtest.FakePool{}
		s.resetCommands()
		admin := shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}

		s.bookings.EXPECT().LockForUpdate(s.ctx, gomock.Any(), first).
			Return(&queries.BookingLock{ID: first, HostUserID: hostUserID, Status: booking.StatusPending}, nil)
		s.bookings.EXPECT().UpdateStatus(s.ctx, gomock.Any(), first, booking.StatusConfirmed).Return(nil)

		err := s.commands.BulkUpdateStatus(s.ctx, admin, []commands.StatusChange{
			{BookingID: first, Status: booking.StatusConfirmed},
		})
		s.NoError(err)
	})

	s.Run("guest rejected before any lock", func() {
		guest := shared.Actor{ID: uuid.New(), Role: user.RoleGuest}
		err := s.commands.BulkUpdateStatus(s.ctx, guest, []commands.StatusChange{
			{BookingID: first, Status: booking.StatusConfirmed},
		})
		s.ErrorIs(err, commands.ErrNotBookingOwner)
	})

	s.Run("unknown status rejected", func() {
		s.pool = &dbtest.FakePool{}
		s.resetCommands()

		err := s.commands.BulkUpdateStatus(s.ctx, hostActor, []commands.StatusChange{
			{BookingID: first, Status: booking.Status("shipped")},
		})
		s.ErrorIs(err, commands.ErrIllegalTransition)
	})
}

// resetCommands rebuilds the command service after swapping the fake pool.
func (s *BookingCommandsTestSuite) resetCommands() {
	factory := booking.NewFactory(clock.NewMockClock(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)))
	s.commands = commands.NewBookingCommands(
		s.bookings, s.apartments, s.hosts, s.blocked,
		s.checkout, s.mailer, factory, s.pool,
	)
}
