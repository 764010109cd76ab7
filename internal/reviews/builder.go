package reviews

import (
	"sort"
	"time"

	"evcharge_back_end/internal/models"

	"github.com/gocql/gocql"
)

// Valeur de repli quand l'utilisateur ou la borne d'un avis a disparu
const unknownField = "Unknown"

type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type StationInfo struct {
	Name string `json:"name"`
}

// View est l'avis aplati tel que le frontend le consomme
type View struct {
	ID        gocql.UUID  `json:"id"`
	UserID    gocql.UUID  `json:"userId"`
	StationID gocql.UUID  `json:"stationId"`
	Rating    int         `json:"rating"`
	Comment   string      `json:"comment"`
	CreatedAt time.Time   `json:"createdAt"`
	User      UserInfo    `json:"user"`
	Station   StationInfo `json:"station"`
}

// BuildViews aplatit une liste d'avis en enregistrements d'affichage.
// Les associations absentes tombent sur "Unknown" ; la sortie est triée
// par note croissante, le même ordre sur tous les endpoints de listing
func BuildViews(list []models.Review) []View {
	views := make([]View, 0, len(list))
	for _, r := range list {
		v := View{
			ID:        r.ID,
			UserID:    r.UserID,
			StationID: r.StationID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
			User:      UserInfo{Name: unknownField, Email: unknownField},
			Station:   StationInfo{Name: unknownField},
		}
		if r.User != nil {
			v.User = UserInfo{Name: r.User.Name, Email: r.User.Email}
		}
		if r.Station != nil {
			v.Station = StationInfo{Name: r.Station.Name}
		}
		views = append(views, v)
	}
	SortViewsByRating(views)
	return views
}

// SortViewsByRating trie par note croissante, tri stable (pas d'ordre
// secondaire garanti entre notes égales)
func SortViewsByRating(views []View) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Rating < views[j].Rating
	})
}

// SortReviewsByRating applique le même contrat d'ordre aux avis bruts
func SortReviewsByRating(list []models.Review) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Rating < list[j].Rating
	})
}
