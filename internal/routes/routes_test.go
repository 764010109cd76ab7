package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"evcharge_back_end/internal/bookings"
	"evcharge_back_end/internal/handlers/admin"
	"evcharge_back_end/internal/handlers/payement"
	"evcharge_back_end/internal/handlers/review"
	"evcharge_back_end/internal/handlers/station"
	"evcharge_back_end/internal/handlers/stationmaster"
	"evcharge_back_end/internal/handlers/user"
	"evcharge_back_end/internal/reviews"
	"evcharge_back_end/internal/stations"
	"evcharge_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	st := store.New()
	svc := reviews.NewService(st)

	h := &Handlers{
		Users:         user.NewHandler(st),
		Reviews:       review.NewHandler(svc),
		Admin:         admin.NewHandler(st, stations.NewWorkflow(st), svc),
		StationMaster: stationmaster.NewHandler(st, svc, bookings.NewWorkflow(st)),
		Stations:      station.NewHandler(st),
		Payments:      payement.NewHandler(st),
	}

	r := gin.New()
	RegisterRoutes(r, h)
	return r
}

// makeToken signe un JWT avec le même secret que le middleware
func makeToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   "client@example.com",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(os.Getenv("JWT_SECRET")))
	require.NoError(t, err)
	return token
}

// Le frontend appelle GET /api/bookings/user pour "mes réservations" : la
// route doit router vers le listing, pas vers /bookings/:id avec id="user"
func TestUserBookingListRouteDoesNotHitDetailRoute(t *testing.T) {
	t.Setenv("SCYLLA_KS_BOOKINGS_KEYSPACE", "")
	r := newTestEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/user", nil)
	req.Header.Set("Authorization", "Bearer "+makeToken(t, gocql.TimeUUID().String(), "user"))
	r.ServeHTTP(w, req)

	// Sans base configurée le listing répond 500 ; la route détail aurait
	// répondu 400 "Invalid booking ID" en tentant de parser "user"
	assert.NotEqual(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "Invalid booking ID")
	assert.Contains(t, w.Body.String(), "Error retrieving bookings")
}

// Le frontend appelle POST /api/users/change-password
func TestChangePasswordRouteMatchesFrontend(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/change-password", nil)
	req.Header.Set("Authorization", "Bearer "+makeToken(t, gocql.TimeUUID().String(), "user"))
	r.ServeHTTP(w, req)

	// Corps vide : le handler répond 400 "Invalid data". Une route
	// manquante aurait donné 404 avant d'atteindre le handler
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid data")
}

// GET /api/auth/me est l'alias profil que consomme la page Profile
func TestAuthMeRouteIsRegistered(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.ServeHTTP(w, req)

	// Sans token le garde JWT répond 401 ; une route absente aurait
	// donné le 404 du routeur
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnknownRouteStillGives404(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
