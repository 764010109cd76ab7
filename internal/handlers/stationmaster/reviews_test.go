package stationmaster

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"evcharge_back_end/internal/models"
	"evcharge_back_end/internal/reviews"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway pilote le service d'avis sans ScyllaDB
type fakeGateway struct {
	stations       map[gocql.UUID]models.Station
	stationReviews map[gocql.UUID][]models.Review
}

func (f *fakeGateway) ListReviews(ctx context.Context) ([]models.Review, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGateway) ListStationReviews(ctx context.Context, stationID gocql.UUID) ([]models.Review, error) {
	return f.stationReviews[stationID], nil
}

func (f *fakeGateway) CreateReview(ctx context.Context, r models.Review) error {
	return errors.New("not implemented")
}

func (f *fakeGateway) GetStation(ctx context.Context, id gocql.UUID) (*models.Station, error) {
	st, ok := f.stations[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &st, nil
}

func (f *fakeGateway) ListStationsByOwner(ctx context.Context, ownerID gocql.UUID) ([]models.Station, error) {
	list := make([]models.Station, 0)
	for _, st := range f.stations {
		if st.OwnerID == ownerID {
			list = append(list, st)
		}
	}
	return list, nil
}

func newReviewsRouter(gw *fakeGateway, masterUUID gocql.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{Reviews: reviews.NewService(gw)}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", masterUUID.String())
	})
	r.GET("/api/station-master/stations/:id/reviews", h.GetStationReviews)
	r.GET("/api/station-master/reviews", h.GetMyStationReviews)
	return r
}

func TestGetStationReviewsBorneDUnAutreProprietaire(t *testing.T) {
	master := gocql.TimeUUID()
	other := gocql.TimeUUID()
	stationID := gocql.TimeUUID()

	gw := &fakeGateway{
		stations: map[gocql.UUID]models.Station{
			stationID: {ID: stationID, OwnerID: other},
		},
		stationReviews: map[gocql.UUID][]models.Review{
			stationID: {{ID: gocql.TimeUUID(), Rating: 5}},
		},
	}
	r := newReviewsRouter(gw, master)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/station-master/stations/"+stationID.String()+"/reviews", nil)
	r.ServeHTTP(w, req)

	// Même 404 que pour une borne inexistante : pas de fuite d'information
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Station not found or not owned by you")
}

func TestGetStationReviewsBorneInconnue(t *testing.T) {
	master := gocql.TimeUUID()
	r := newReviewsRouter(&fakeGateway{stations: map[gocql.UUID]models.Station{}}, master)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/station-master/stations/"+gocql.TimeUUID().String()+"/reviews", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStationReviewsBorneDuProprietaire(t *testing.T) {
	master := gocql.TimeUUID()
	stationID := gocql.TimeUUID()

	gw := &fakeGateway{
		stations: map[gocql.UUID]models.Station{
			stationID: {ID: stationID, OwnerID: master},
		},
		stationReviews: map[gocql.UUID][]models.Review{
			stationID: {
				{ID: gocql.TimeUUID(), StationID: stationID, Rating: 4},
				{ID: gocql.TimeUUID(), StationID: stationID, Rating: 2},
			},
		},
	}
	r := newReviewsRouter(gw, master)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/station-master/stations/"+stationID.String()+"/reviews", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// Tri par note croissante : le 2 avant le 4
	assert.Regexp(t, `"rating":2.*"rating":4`, w.Body.String())
}

func TestGetMyStationReviewsAgregeToutesLesBornes(t *testing.T) {
	master := gocql.TimeUUID()
	s1 := gocql.TimeUUID()
	s2 := gocql.TimeUUID()

	gw := &fakeGateway{
		stations: map[gocql.UUID]models.Station{
			s1: {ID: s1, Name: "Borne Nord", OwnerID: master},
			s2: {ID: s2, Name: "Borne Sud", OwnerID: master},
		},
		stationReviews: map[gocql.UUID][]models.Review{
			s1: {{ID: gocql.TimeUUID(), StationID: s1, Rating: 5}},
			s2: {{ID: gocql.TimeUUID(), StationID: s2, Rating: 1}},
		},
	}
	r := newReviewsRouter(gw, master)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/station-master/reviews", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var views []reviews.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, 1, views[0].Rating)
	assert.Equal(t, "Borne Sud", views[0].Station.Name)
	assert.Equal(t, 5, views[1].Rating)
	assert.Equal(t, "Borne Nord", views[1].Station.Name)
}
