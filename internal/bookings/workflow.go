// Package bookings porte les transitions de statut des réservations,
// déclenchées par le station master propriétaire de la borne.
package bookings

import (
	"context"
	"errors"

	"evcharge_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ErrBookingNotOwned : la réservation vise une borne qui n'appartient pas
// au station master appelant
var ErrBookingNotOwned = errors.New("booking does not belong to one of your stations")

type Gateway interface {
	GetBooking(ctx context.Context, id gocql.UUID) (*models.Booking, error)
	GetStation(ctx context.Context, id gocql.UUID) (*models.Station, error)
	UpdateBookingStatus(ctx context.Context, id gocql.UUID, status string) error
}

type Workflow struct {
	gw Gateway
}

func NewWorkflow(gw Gateway) *Workflow {
	return &Workflow{gw: gw}
}

func (w *Workflow) Confirm(ctx context.Context, masterID, bookingID gocql.UUID) error {
	return w.setStatus(ctx, masterID, bookingID, models.BookingConfirmed)
}

func (w *Workflow) Cancel(ctx context.Context, masterID, bookingID gocql.UUID) error {
	return w.setStatus(ctx, masterID, bookingID, models.BookingCancelled)
}

func (w *Workflow) Complete(ctx context.Context, masterID, bookingID gocql.UUID) error {
	return w.setStatus(ctx, masterID, bookingID, models.BookingCompleted)
}

// setStatus écrase le statut sans table de transitions : n'importe quel
// statut courant peut être recouvert, comme dans le flux historique.
// La réservation doit exister et sa borne appartenir à l'appelant
func (w *Workflow) setStatus(ctx context.Context, masterID, bookingID gocql.UUID, status string) error {
	b, err := w.gw.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	st, err := w.gw.GetStation(ctx, b.StationID)
	if err != nil {
		return err
	}
	if st.OwnerID != masterID {
		return ErrBookingNotOwned
	}

	return w.gw.UpdateBookingStatus(ctx, bookingID, status)
}
