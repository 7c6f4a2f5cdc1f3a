//go:build unit

package booking_test

import (
	"regexp"
	"testing"
	"time"

	"stayflow/internal/domain/booking"
	"stayflow/internal/pkg/clock"
	"stayflow/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCreateBooking(t *testing.T) {
	fixedNow := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	factory := booking.NewFactory(clock.NewMockClock(fixedNow))

	apt, err := builder.NewApartmentBuilder().BuildDomain()
	require.NoError(t, err)

	guest, err := booking.NewGuest("Ada Lovelace", "ada@example.com", "+31612345678")
	require.NoError(t, err)

	dates := mustRange(t, "2026-03-10", "2026-03-13")

	t.Run("builds pending booking with snapshotted quote", func(t *testing.T) {
		b, quote, err := factory.CreateBooking(apt, guest, dates, 2)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, apt.ID(), b.ApartmentID())
		assert.Equal(t, apt.HostUserID(), b.HostUserID())
		assert.Equal(t, guest, b.Guest())
		assert.Equal(t, 2, b.NumGuests())
		assert.Nil(t, b.PaymentSessionID())
		assert.Equal(t, fixedNow, b.CreatedAt())
		assert.Equal(t, fixedNow, b.UpdatedAt())

		// 3 nights at 10000 plus a 2000 service fee.
		assert.Equal(t, int64(32000), quote.Total.Cents())
		assert.Equal(t, quote.Total, b.Total())
		assert.Equal(t, quote.PricePerNight, b.PricePerNight())
		assert.Equal(t, quote.Deposit, b.Deposit())
	})

	t.Run("custom id carries the creation date", func(t *testing.T) {
		b, _, err := factory.CreateBooking(apt, guest, dates, 2)
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^BK-20260301-[0-9A-F]{6}$`), b.CustomID())
	})

	t.Run("custom ids are unique per booking", func(t *testing.T) {
		b1, _, err := factory.CreateBooking(apt, guest, dates, 2)
		require.NoError(t, err)
		b2, _, err := factory.CreateBooking(apt, guest, dates, 2)
		require.NoError(t, err)
		assert.NotEqual(t, b1.CustomID(), b2.CustomID())
		assert.NotEqual(t, b1.ID(), b2.ID())
	})

	t.Run("rejects guest count above capacity", func(t *testing.T) {
		_, _, err := factory.CreateBooking(apt, guest, dates, 5)
		assert.ErrorIs(t, err, booking.ErrTooManyGuests)
	})

	t.Run("rejects zero guests", func(t *testing.T) {
		_, _, err := factory.CreateBooking(apt, guest, dates, 0)
		assert.ErrorIs(t, err, booking.ErrTooManyGuests)
	})

	t.Run("zero capacity disables the capacity check", func(t *testing.T) {
		uncapped, err := builder.NewApartmentBuilder().With(func(b *builder.ApartmentBuilder) {
			b.Capacity = 0
		}).BuildDomain()
		require.NoError(t, err)

		_, _, err = factory.CreateBooking(uncapped, guest, dates, 12)
		assert.NoError(t, err)
	})

	t.Run("propagates stay length violations", func(t *testing.T) {
		strict, err := builder.NewApartmentBuilder().With(func(b *builder.ApartmentBuilder) {
			b.MinStayNights = 5
		}).BuildDomain()
		require.NoError(t, err)

		_, _, err = factory.CreateBooking(strict, guest, dates, 2)
		assert.ErrorIs(t, err, booking.ErrStayTooShort)
	})
}
