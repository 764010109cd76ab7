package bookings

import (
	"context"
	"testing"

	"evcharge_back_end/internal/models"
	"evcharge_back_end/internal/store"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	bookings map[gocql.UUID]models.Booking
	stations map[gocql.UUID]models.Station
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		bookings: make(map[gocql.UUID]models.Booking),
		stations: make(map[gocql.UUID]models.Station),
	}
}

func (f *fakeGateway) GetBooking(ctx context.Context, id gocql.UUID) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &b, nil
}

func (f *fakeGateway) GetStation(ctx context.Context, id gocql.UUID) (*models.Station, error) {
	st, ok := f.stations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &st, nil
}

func (f *fakeGateway) UpdateBookingStatus(ctx context.Context, id gocql.UUID, status string) error {
	b, ok := f.bookings[id]
	if !ok {
		return store.ErrNotFound
	}
	b.Status = status
	f.bookings[id] = b
	return nil
}

func seed(gw *fakeGateway, ownerID gocql.UUID, status string) gocql.UUID {
	stationID := gocql.TimeUUID()
	bookingID := gocql.TimeUUID()
	gw.stations[stationID] = models.Station{ID: stationID, OwnerID: ownerID}
	gw.bookings[bookingID] = models.Booking{ID: bookingID, StationID: stationID, Status: status}
	return bookingID
}

func TestConfirmCancelCompleteOverwriteStatus(t *testing.T) {
	masterID := gocql.TimeUUID()

	cases := []struct {
		name string
		call func(w *Workflow, ctx context.Context, m, b gocql.UUID) error
		want string
	}{
		{"confirm", (*Workflow).Confirm, models.BookingConfirmed},
		{"cancel", (*Workflow).Cancel, models.BookingCancelled},
		{"complete", (*Workflow).Complete, models.BookingCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := newFakeGateway()
			bookingID := seed(gw, masterID, models.BookingPending)
			wf := NewWorkflow(gw)

			require.NoError(t, tc.call(wf, context.Background(), masterID, bookingID))
			assert.Equal(t, tc.want, gw.bookings[bookingID].Status)
		})
	}
}

func TestStatusOverwriteIsPermissive(t *testing.T) {
	// Pas de table de transitions : Completed peut repasser Confirmed
	masterID := gocql.TimeUUID()
	gw := newFakeGateway()
	bookingID := seed(gw, masterID, models.BookingCompleted)
	wf := NewWorkflow(gw)

	require.NoError(t, wf.Confirm(context.Background(), masterID, bookingID))
	assert.Equal(t, models.BookingConfirmed, gw.bookings[bookingID].Status)
}

func TestUnknownBookingFailsWithoutCreatingOne(t *testing.T) {
	gw := newFakeGateway()
	wf := NewWorkflow(gw)

	err := wf.Confirm(context.Background(), gocql.TimeUUID(), gocql.TimeUUID())

	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, gw.bookings)
}

func TestForeignStationBookingIsRejected(t *testing.T) {
	gw := newFakeGateway()
	bookingID := seed(gw, gocql.TimeUUID(), models.BookingPending)
	wf := NewWorkflow(gw)

	err := wf.Complete(context.Background(), gocql.TimeUUID(), bookingID)

	assert.ErrorIs(t, err, ErrBookingNotOwned)
	// Le statut n'a pas bougé
	for _, b := range gw.bookings {
		assert.Equal(t, models.BookingPending, b.Status)
	}
}
