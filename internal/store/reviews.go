package store

import (
	"context"
	"log"

	"evcharge_back_end/internal/cache"
	"evcharge_back_end/internal/database"
	"evcharge_back_end/internal/models"

	"github.com/gocql/gocql"
)

// CreateReview insère l'avis et sa copie dans l'index par borne
func (s *Store) CreateReview(ctx context.Context, r models.Review) error {
	session, err := database.GetStationsSession()
	if err != nil {
		return err
	}

	err = session.Query(`INSERT INTO reviews (review_id, user_id, station_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.StationID, r.Rating, r.Comment, r.CreatedAt).WithContext(ctx).Exec()
	if err != nil {
		return err
	}

	if err := session.Query(`INSERT INTO reviews_by_station (station_id, review_id, user_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.StationID, r.ID, r.UserID, r.Rating, r.Comment, r.CreatedAt).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur index reviews_by_station: %v", err)
	}
	return nil
}

// ListReviews retourne tous les avis, associations user et station résolues.
// Une association introuvable reste à nil, le builder affichera "Unknown"
func (s *Store) ListReviews(ctx context.Context) ([]models.Review, error) {
	session, err := database.GetStationsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT review_id, user_id, station_id, rating, comment, created_at
		FROM reviews`).WithContext(ctx).Iter()

	reviews := make([]models.Review, 0)
	var r models.Review
	for iter.Scan(&r.ID, &r.UserID, &r.StationID, &r.Rating, &r.Comment, &r.CreatedAt) {
		r.User, r.Station = nil, nil
		reviews = append(reviews, r)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	s.resolveUsers(ctx, reviews)
	s.resolveStations(ctx, reviews)
	return reviews, nil
}

// ListStationReviews retourne les avis d'une borne, association user résolue.
// Une borne inconnue donne simplement une liste vide
func (s *Store) ListStationReviews(ctx context.Context, stationID gocql.UUID) ([]models.Review, error) {
	session, err := database.GetStationsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT review_id, user_id, rating, comment, created_at
		FROM reviews_by_station WHERE station_id = ?`, stationID).WithContext(ctx).Iter()

	reviews := make([]models.Review, 0)
	var r models.Review
	for iter.Scan(&r.ID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt) {
		r.StationID = stationID
		r.User, r.Station = nil, nil
		reviews = append(reviews, r)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	s.resolveUsers(ctx, reviews)
	return reviews, nil
}

// resolveUsers attache l'auteur de chaque avis, une seule lecture par id
func (s *Store) resolveUsers(ctx context.Context, reviews []models.Review) {
	users := make(map[gocql.UUID]*models.User)
	for i := range reviews {
		u, seen := users[reviews[i].UserID]
		if !seen {
			var err error
			u, err = cache.GetUserFromCache(ctx, reviews[i].UserID)
			if err != nil {
				u = nil // utilisateur supprimé ou illisible
			}
			users[reviews[i].UserID] = u
		}
		reviews[i].User = u
	}
}

// resolveStations attache la borne de chaque avis, une seule lecture par id
func (s *Store) resolveStations(ctx context.Context, reviews []models.Review) {
	stations := make(map[gocql.UUID]*models.Station)
	for i := range reviews {
		st, seen := stations[reviews[i].StationID]
		if !seen {
			var err error
			st, err = cache.GetStationFromCache(ctx, reviews[i].StationID)
			if err != nil {
				st = nil
			}
			stations[reviews[i].StationID] = st
		}
		reviews[i].Station = st
	}
}
