package reviews

import (
	"testing"
	"time"

	"evcharge_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReview(rating int, user *models.User, station *models.Station) models.Review {
	return models.Review{
		ID:        gocql.TimeUUID(),
		UserID:    mustUUID("11111111-1111-1111-1111-111111111111"),
		StationID: mustUUID("22222222-2222-2222-2222-222222222222"),
		Rating:    rating,
		Comment:   "ok",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		User:      user,
		Station:   station,
	}
}

func mustUUID(s string) gocql.UUID {
	u, err := gocql.ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

func TestBuildViewsSortsByRatingAscending(t *testing.T) {
	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	station := &models.Station{Name: "Borne Centre-Ville"}

	views := BuildViews([]models.Review{
		newReview(5, user, station),
		newReview(1, user, station),
		newReview(3, user, station),
	})

	require.Len(t, views, 3)
	assert.Equal(t, []int{1, 3, 5}, []int{views[0].Rating, views[1].Rating, views[2].Rating})
}

func TestBuildViewsFlattensAssociations(t *testing.T) {
	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	station := &models.Station{Name: "Borne Centre-Ville"}

	views := BuildViews([]models.Review{newReview(4, user, station)})

	require.Len(t, views, 1)
	assert.Equal(t, "Alice", views[0].User.Name)
	assert.Equal(t, "alice@example.com", views[0].User.Email)
	assert.Equal(t, "Borne Centre-Ville", views[0].Station.Name)
	assert.Equal(t, 4, views[0].Rating)
	assert.Equal(t, "ok", views[0].Comment)
}

func TestBuildViewsMissingUserFallsBackToUnknown(t *testing.T) {
	station := &models.Station{Name: "Borne Centre-Ville"}

	views := BuildViews([]models.Review{newReview(2, nil, station)})

	require.Len(t, views, 1)
	assert.Equal(t, "Unknown", views[0].User.Name)
	assert.Equal(t, "Unknown", views[0].User.Email)
	assert.Equal(t, "Borne Centre-Ville", views[0].Station.Name)
}

func TestBuildViewsMissingStationFallsBackToUnknown(t *testing.T) {
	user := &models.User{Name: "Alice", Email: "alice@example.com"}

	views := BuildViews([]models.Review{newReview(2, user, nil)})

	require.Len(t, views, 1)
	assert.Equal(t, "Unknown", views[0].Station.Name)
	assert.Equal(t, "Alice", views[0].User.Name)
}

func TestBuildViewsEmptyInputGivesEmptyNonNilSlice(t *testing.T) {
	views := BuildViews(nil)

	require.NotNil(t, views)
	assert.Empty(t, views)
}

func TestSortViewsByRatingIsStable(t *testing.T) {
	// À note égale, l'ordre d'insertion est conservé
	a := View{Rating: 3, Comment: "premier"}
	b := View{Rating: 3, Comment: "deuxième"}
	c := View{Rating: 1, Comment: "troisième"}

	views := []View{a, b, c}
	SortViewsByRating(views)

	assert.Equal(t, "troisième", views[0].Comment)
	assert.Equal(t, "premier", views[1].Comment)
	assert.Equal(t, "deuxième", views[2].Comment)
}
