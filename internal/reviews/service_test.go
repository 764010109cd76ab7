package reviews

import (
	"context"
	"errors"
	"testing"

	"evcharge_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	reviews   []models.Review
	byStation map[gocql.UUID][]models.Review
	stations  map[gocql.UUID]models.Station
	owned     map[gocql.UUID][]models.Station
	created   []models.Review
	failWith  error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		byStation: make(map[gocql.UUID][]models.Review),
		stations:  make(map[gocql.UUID]models.Station),
		owned:     make(map[gocql.UUID][]models.Station),
	}
}

func (f *fakeGateway) ListReviews(ctx context.Context) ([]models.Review, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.reviews, nil
}

func (f *fakeGateway) ListStationReviews(ctx context.Context, stationID gocql.UUID) ([]models.Review, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.byStation[stationID], nil
}

func (f *fakeGateway) CreateReview(ctx context.Context, r models.Review) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.created = append(f.created, r)
	return nil
}

func (f *fakeGateway) GetStation(ctx context.Context, id gocql.UUID) (*models.Station, error) {
	st, ok := f.stations[id]
	if !ok {
		return nil, errors.New("introuvable")
	}
	return &st, nil
}

func (f *fakeGateway) ListStationsByOwner(ctx context.Context, ownerID gocql.UUID) ([]models.Station, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.owned[ownerID], nil
}

var (
	masterID  = mustUUID("aaaaaaaa-0000-0000-0000-000000000001")
	otherID   = mustUUID("aaaaaaaa-0000-0000-0000-000000000002")
	stationS1 = mustUUID("bbbbbbbb-0000-0000-0000-000000000001")
	stationS2 = mustUUID("bbbbbbbb-0000-0000-0000-000000000002")
)

func TestListAllBuildsSortedViews(t *testing.T) {
	gw := newFakeGateway()
	gw.reviews = []models.Review{
		{ID: gocql.TimeUUID(), Rating: 4, User: &models.User{Name: "Bob", Email: "bob@example.com"}},
		{ID: gocql.TimeUUID(), Rating: 2},
	}
	svc := NewService(gw)

	views, err := svc.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 2, views[0].Rating)
	assert.Equal(t, "Unknown", views[0].User.Name)
	assert.Equal(t, "Bob", views[1].User.Name)
}

func TestListAllPropagatesGatewayError(t *testing.T) {
	// C'est le handler qui avale l'erreur en liste vide, pas le service
	gw := newFakeGateway()
	gw.failWith = errors.New("scylla indisponible")
	svc := NewService(gw)

	_, err := svc.ListAll(context.Background())

	assert.Error(t, err)
}

func TestListByStationSortsAscending(t *testing.T) {
	gw := newFakeGateway()
	gw.byStation[stationS1] = []models.Review{
		{Rating: 5}, {Rating: 1}, {Rating: 3},
	}
	svc := NewService(gw)

	list, err := svc.ListByStation(context.Background(), stationS1)

	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 1, list[0].Rating)
	assert.Equal(t, 5, list[2].Rating)
}

func TestListByStationUnknownStationGivesEmptyList(t *testing.T) {
	svc := NewService(newFakeGateway())

	list, err := svc.ListByStation(context.Background(), stationS1)

	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListForStationRejectsForeignStation(t *testing.T) {
	gw := newFakeGateway()
	gw.stations[stationS1] = models.Station{ID: stationS1, OwnerID: otherID}
	svc := NewService(gw)

	_, err := svc.ListForStation(context.Background(), masterID, stationS1)

	assert.ErrorIs(t, err, ErrStationNotOwned)
}

func TestListForStationRejectsUnknownStation(t *testing.T) {
	svc := NewService(newFakeGateway())

	_, err := svc.ListForStation(context.Background(), masterID, stationS1)

	assert.ErrorIs(t, err, ErrStationNotOwned)
}

func TestListForStationReturnsSortedReviewsForOwner(t *testing.T) {
	gw := newFakeGateway()
	gw.stations[stationS1] = models.Station{ID: stationS1, OwnerID: masterID}
	gw.byStation[stationS1] = []models.Review{{Rating: 4}, {Rating: 2}}
	svc := NewService(gw)

	list, err := svc.ListForStation(context.Background(), masterID, stationS1)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Rating)
}

func TestListForMasterAggregatesAcrossStations(t *testing.T) {
	// M possède S1 (notes 4 et 1) et S2 (note 3) : sortie attendue 1, 3, 4
	gw := newFakeGateway()
	s1 := models.Station{ID: stationS1, Name: "S1", OwnerID: masterID}
	s2 := models.Station{ID: stationS2, Name: "S2", OwnerID: masterID}
	gw.owned[masterID] = []models.Station{s1, s2}
	gw.byStation[stationS1] = []models.Review{{StationID: stationS1, Rating: 4}, {StationID: stationS1, Rating: 1}}
	gw.byStation[stationS2] = []models.Review{{StationID: stationS2, Rating: 3}}
	svc := NewService(gw)

	views, err := svc.ListForMaster(context.Background(), masterID)

	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, []int{1, 3, 4}, []int{views[0].Rating, views[1].Rating, views[2].Rating})
	assert.Equal(t, "S1", views[0].Station.Name)
	assert.Equal(t, "S2", views[1].Station.Name)
	assert.Equal(t, "S1", views[2].Station.Name)
}

func TestListForMasterUsesLoopLocalStationName(t *testing.T) {
	// Le nom vient de la borne énumérée, pas de l'association portée par l'avis
	gw := newFakeGateway()
	s1 := models.Station{ID: stationS1, Name: "Nom Courant", OwnerID: masterID}
	gw.owned[masterID] = []models.Station{s1}
	gw.byStation[stationS1] = []models.Review{
		{StationID: stationS1, Rating: 2, Station: &models.Station{Name: "Nom Périmé"}},
	}
	svc := NewService(gw)

	views, err := svc.ListForMaster(context.Background(), masterID)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Nom Courant", views[0].Station.Name)
}

func TestListForMasterNoStationsGivesEmptyList(t *testing.T) {
	svc := NewService(newFakeGateway())

	views, err := svc.ListForMaster(context.Background(), masterID)

	require.NoError(t, err)
	require.NotNil(t, views)
	assert.Empty(t, views)
}

func TestCreateFillsIDAndTimestamp(t *testing.T) {
	gw := newFakeGateway()
	svc := NewService(gw)

	r, err := svc.Create(context.Background(), masterID, stationS1, 5, "parfait")

	require.NoError(t, err)
	require.Len(t, gw.created, 1)
	assert.NotZero(t, r.ID)
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, 5, gw.created[0].Rating)
	assert.Equal(t, "parfait", gw.created[0].Comment)
}

func TestCreatePropagatesGatewayError(t *testing.T) {
	gw := newFakeGateway()
	gw.failWith = errors.New("écriture refusée")
	svc := NewService(gw)

	_, err := svc.Create(context.Background(), masterID, stationS1, 3, "")

	assert.Error(t, err)
}
