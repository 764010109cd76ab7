package store

import (
	"context"
	"errors"
	"log"
	"time"

	"evcharge_back_end/internal/database"
	"evcharge_back_end/internal/models"

	"github.com/gocql/gocql"
)

const bookingColumns = `booking_id, station_id, user_id, status, start_time, hours, amount,
	payment_id, created_at, updated_at`

// CreateBooking insère la réservation et ses copies dénormalisées
func (s *Store) CreateBooking(ctx context.Context, b models.Booking) error {
	session, err := database.GetBookingsSession()
	if err != nil {
		return err
	}

	err = session.Query(`INSERT INTO bookings (`+bookingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.StationID, b.UserID, b.Status, b.StartTime, b.Hours, b.Amount,
		b.PaymentID, b.CreatedAt, b.UpdatedAt).WithContext(ctx).Exec()
	if err != nil {
		return err
	}

	if err := session.Query(`INSERT INTO bookings_by_station (station_id, booking_id, user_id, status,
		start_time, hours, amount, payment_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.StationID, b.ID, b.UserID, b.Status, b.StartTime, b.Hours, b.Amount,
		b.PaymentID, b.CreatedAt, b.UpdatedAt).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur index bookings_by_station: %v", err)
	}

	if err := session.Query(`INSERT INTO bookings_by_user (user_id, booking_id, station_id, status,
		start_time, hours, amount, payment_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.UserID, b.ID, b.StationID, b.Status, b.StartTime, b.Hours, b.Amount,
		b.PaymentID, b.CreatedAt, b.UpdatedAt).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur index bookings_by_user: %v", err)
	}
	return nil
}

// GetBooking récupère une réservation par son identifiant
func (s *Store) GetBooking(ctx context.Context, id gocql.UUID) (*models.Booking, error) {
	session, err := database.GetBookingsSession()
	if err != nil {
		return nil, err
	}

	b := models.Booking{ID: id}
	err = session.Query(`SELECT station_id, user_id, status, start_time, hours, amount, payment_id,
		created_at, updated_at FROM bookings WHERE booking_id = ?`, id).WithContext(ctx).
		Scan(&b.StationID, &b.UserID, &b.Status, &b.StartTime, &b.Hours, &b.Amount,
			&b.PaymentID, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBookings retourne toutes les réservations (surface admin)
func (s *Store) ListBookings(ctx context.Context) ([]models.Booking, error) {
	session, err := database.GetBookingsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query("SELECT " + bookingColumns + " FROM bookings").WithContext(ctx).Iter()
	return collectBookings(iter)
}

// ListStationBookings retourne les réservations d'une borne
func (s *Store) ListStationBookings(ctx context.Context, stationID gocql.UUID) ([]models.Booking, error) {
	session, err := database.GetBookingsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT booking_id, station_id, user_id, status, start_time, hours, amount,
		payment_id, created_at, updated_at FROM bookings_by_station WHERE station_id = ?`,
		stationID).WithContext(ctx).Iter()
	return collectBookings(iter)
}

// ListUserBookings retourne les réservations d'un utilisateur
func (s *Store) ListUserBookings(ctx context.Context, userID gocql.UUID) ([]models.Booking, error) {
	session, err := database.GetBookingsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT booking_id, station_id, user_id, status, start_time, hours, amount,
		payment_id, created_at, updated_at FROM bookings_by_user WHERE user_id = ?`,
		userID).WithContext(ctx).Iter()
	return collectBookings(iter)
}

func collectBookings(iter *gocql.Iter) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	var b models.Booking
	for iter.Scan(&b.ID, &b.StationID, &b.UserID, &b.Status, &b.StartTime, &b.Hours,
		&b.Amount, &b.PaymentID, &b.CreatedAt, &b.UpdatedAt) {
		bookings = append(bookings, b)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateBookingStatus écrase le statut d'une réservation existante.
// IF EXISTS : un id inconnu échoue au lieu de créer une ligne fantôme
func (s *Store) UpdateBookingStatus(ctx context.Context, id gocql.UUID, status string) error {
	session, err := database.GetBookingsSession()
	if err != nil {
		return err
	}

	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	applied, err := session.Query("UPDATE bookings SET status = ?, updated_at = ? WHERE booking_id = ? IF EXISTS",
		status, now, id).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return err
	}
	if !applied {
		return ErrNotFound
	}

	if err := session.Query(`UPDATE bookings_by_station SET status = ?, updated_at = ?
		WHERE station_id = ? AND booking_id = ?`,
		status, now, b.StationID, id).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur index bookings_by_station: %v", err)
	}
	if err := session.Query(`UPDATE bookings_by_user SET status = ?, updated_at = ?
		WHERE user_id = ? AND booking_id = ?`,
		status, now, b.UserID, id).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur index bookings_by_user: %v", err)
	}
	return nil
}

// MarkBookingPaid rattache le PaymentIntent Stripe à la réservation
func (s *Store) MarkBookingPaid(ctx context.Context, id gocql.UUID, paymentID string) error {
	session, err := database.GetBookingsSession()
	if err != nil {
		return err
	}

	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	applied, err := session.Query("UPDATE bookings SET payment_id = ?, updated_at = ? WHERE booking_id = ? IF EXISTS",
		paymentID, now, id).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return err
	}
	if !applied {
		return ErrNotFound
	}

	if err := session.Query(`UPDATE bookings_by_station SET payment_id = ?, updated_at = ?
		WHERE station_id = ? AND booking_id = ?`,
		paymentID, now, b.StationID, id).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur index bookings_by_station: %v", err)
	}
	if err := session.Query(`UPDATE bookings_by_user SET payment_id = ?, updated_at = ?
		WHERE user_id = ? AND booking_id = ?`,
		paymentID, now, b.UserID, id).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur index bookings_by_user: %v", err)
	}
	return nil
}
