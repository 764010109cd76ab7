package reviews

import (
	"context"
	"errors"
	"time"

	"evcharge_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ErrStationNotOwned : la borne n'existe pas ou n'appartient pas au
// station master appelant. Les handlers la traduisent en 404
var ErrStationNotOwned = errors.New("station not found or not owned")

// Gateway est la partie de la persistance dont le service d'avis a besoin
type Gateway interface {
	ListReviews(ctx context.Context) ([]models.Review, error)
	ListStationReviews(ctx context.Context, stationID gocql.UUID) ([]models.Review, error)
	CreateReview(ctx context.Context, r models.Review) error
	GetStation(ctx context.Context, id gocql.UUID) (*models.Station, error)
	ListStationsByOwner(ctx context.Context, ownerID gocql.UUID) ([]models.Station, error)
}

// Service applique les règles de visibilité des avis. Il remonte ses
// erreurs : c'est le handler qui décide de les avaler en liste vide
type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// ListAll retourne tous les avis aplatis, note croissante
func (s *Service) ListAll(ctx context.Context) ([]View, error) {
	list, err := s.gw.ListReviews(ctx)
	if err != nil {
		return nil, err
	}
	return BuildViews(list), nil
}

// ListByStation retourne les avis bruts d'une borne, note croissante.
// Pas de vérification d'existence : une borne inconnue donne une liste vide
func (s *Service) ListByStation(ctx context.Context, stationID gocql.UUID) ([]models.Review, error) {
	list, err := s.gw.ListStationReviews(ctx, stationID)
	if err != nil {
		return nil, err
	}
	SortReviewsByRating(list)
	return list, nil
}

// ListForStation est la variante station-master de ListByStation, avec le
// contrôle de propriété explicite (l'implémentation historique ne le
// faisait pas, voir DESIGN.md)
func (s *Service) ListForStation(ctx context.Context, masterID, stationID gocql.UUID) ([]models.Review, error) {
	st, err := s.gw.GetStation(ctx, stationID)
	if err != nil {
		return nil, ErrStationNotOwned
	}
	if st.OwnerID != masterID {
		return nil, ErrStationNotOwned
	}
	return s.ListByStation(ctx, stationID)
}

// ListForMaster agrège les avis de toutes les bornes du station master :
// une lecture par borne, nom de borne pris sur l'enregistrement de la
// boucle, puis tri global par note croissante
func (s *Service) ListForMaster(ctx context.Context, masterID gocql.UUID) ([]View, error) {
	stations, err := s.gw.ListStationsByOwner(ctx, masterID)
	if err != nil {
		return nil, err
	}

	all := make([]models.Review, 0)
	for _, station := range stations {
		list, err := s.gw.ListStationReviews(ctx, station.ID)
		if err != nil {
			return nil, err
		}
		st := station
		for i := range list {
			list[i].Station = &st
		}
		all = append(all, list...)
	}
	return BuildViews(all), nil
}

// Create enregistre un nouvel avis. La note est déjà validée (1-5) par le
// binding du handler avant d'arriver ici
func (s *Service) Create(ctx context.Context, userID, stationID gocql.UUID, rating int, comment string) (models.Review, error) {
	r := models.Review{
		ID:        gocql.TimeUUID(),
		UserID:    userID,
		StationID: stationID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if err := s.gw.CreateReview(ctx, r); err != nil {
		return models.Review{}, err
	}
	return r, nil
}
