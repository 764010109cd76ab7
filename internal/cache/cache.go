package cache

import (
	"context"
	"encoding/json"
	"time"

	"evcharge_back_end/internal/database"
	"evcharge_back_end/internal/models"

	"github.com/gocql/gocql"
)

const (
	UserCacheTTL    = 5 * time.Minute
	StationCacheTTL = 10 * time.Minute
)

// GetUserFromCache récupère un utilisateur depuis Redis ou ScyllaDB
func GetUserFromCache(ctx context.Context, userID gocql.UUID) (*models.User, error) {
	key := "user:" + userID.String()

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	user := models.User{ID: userID}
	err = session.Query(`SELECT email, name, role, provider, created_at, updated_at
		FROM users WHERE user_id = ?`, userID).WithContext(ctx).
		Scan(&user.Email, &user.Name, &user.Role, &user.Provider, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(user)
	database.Redis.Set(ctx, key, jsonData, UserCacheTTL)

	return &user, nil
}

// GetStationFromCache récupère une borne depuis Redis ou ScyllaDB
func GetStationFromCache(ctx context.Context, stationID gocql.UUID) (*models.Station, error) {
	key := "station:" + stationID.String()

	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var station models.Station
		if json.Unmarshal([]byte(data), &station) == nil {
			return &station, nil
		}
	}

	session, err := database.GetStationsSession()
	if err != nil {
		return nil, err
	}

	station := models.Station{ID: stationID}
	err = session.Query(`SELECT name, address, city, latitude, longitude, owner_id, connector_type,
		power_kw, price_per_hour, approval_status, status, photo_url, created_at
		FROM stations WHERE station_id = ?`, stationID).WithContext(ctx).
		Scan(&station.Name, &station.Address, &station.City, &station.Latitude, &station.Longitude,
			&station.OwnerID, &station.ConnectorType, &station.PowerKW, &station.PricePerHour,
			&station.ApprovalStatus, &station.Status, &station.PhotoURL, &station.CreatedAt)
	if err != nil {
		return nil, err
	}

	jsonData, _ := json.Marshal(station)
	database.Redis.Set(ctx, key, jsonData, StationCacheTTL)

	return &station, nil
}

// InvalidateStation purge la copie Redis après une mutation
func InvalidateStation(ctx context.Context, stationID gocql.UUID) {
	database.Redis.Del(ctx, "station:"+stationID.String())
}

// InvalidateUser purge la copie Redis après une mutation
func InvalidateUser(ctx context.Context, userID gocql.UUID) {
	database.Redis.Del(ctx, "user:"+userID.String())
}
