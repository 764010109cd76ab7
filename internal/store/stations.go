package store

import (
	"context"
	"errors"
	"log"

	"evcharge_back_end/internal/database"
	"evcharge_back_end/internal/models"

	"github.com/gocql/gocql"
)

const stationColumns = `station_id, name, address, city, latitude, longitude, owner_id,
	connector_type, power_kw, price_per_hour, approval_status, status, photo_url, created_at`

func scanStation(iter *gocql.Iter) (models.Station, bool) {
	var st models.Station
	ok := iter.Scan(&st.ID, &st.Name, &st.Address, &st.City, &st.Latitude, &st.Longitude,
		&st.OwnerID, &st.ConnectorType, &st.PowerKW, &st.PricePerHour,
		&st.ApprovalStatus, &st.Status, &st.PhotoURL, &st.CreatedAt)
	return st, ok
}

// CreateStation insère la borne et sa copie dans l'index par propriétaire
func (s *Store) CreateStation(ctx context.Context, st models.Station) error {
	session, err := database.GetStationsSession()
	if err != nil {
		return err
	}

	err = session.Query(`INSERT INTO stations (`+stationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.ID, st.Name, st.Address, st.City, st.Latitude, st.Longitude, st.OwnerID,
		st.ConnectorType, st.PowerKW, st.PricePerHour, st.ApprovalStatus, st.Status,
		st.PhotoURL, st.CreatedAt).WithContext(ctx).Exec()
	if err != nil {
		return err
	}

	// Copie dénormalisée pour "mes bornes"
	err = session.Query(`INSERT INTO stations_by_owner (owner_id, station_id, name, address, city,
		latitude, longitude, connector_type, power_kw, price_per_hour, approval_status, status, photo_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.OwnerID, st.ID, st.Name, st.Address, st.City, st.Latitude, st.Longitude,
		st.ConnectorType, st.PowerKW, st.PricePerHour, st.ApprovalStatus, st.Status,
		st.PhotoURL, st.CreatedAt).WithContext(ctx).Exec()
	if err != nil {
		log.Printf("⚠️ Erreur index stations_by_owner: %v", err)
	}
	return nil
}

// GetStation récupère une borne par son identifiant
func (s *Store) GetStation(ctx context.Context, id gocql.UUID) (*models.Station, error) {
	session, err := database.GetStationsSession()
	if err != nil {
		return nil, err
	}

	st := models.Station{ID: id}
	err = session.Query(`SELECT name, address, city, latitude, longitude, owner_id, connector_type,
		power_kw, price_per_hour, approval_status, status, photo_url, created_at
		FROM stations WHERE station_id = ?`, id).WithContext(ctx).
		Scan(&st.Name, &st.Address, &st.City, &st.Latitude, &st.Longitude, &st.OwnerID,
			&st.ConnectorType, &st.PowerKW, &st.PricePerHour, &st.ApprovalStatus,
			&st.Status, &st.PhotoURL, &st.CreatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ListStations retourne toutes les bornes
func (s *Store) ListStations(ctx context.Context) ([]models.Station, error) {
	session, err := database.GetStationsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query("SELECT " + stationColumns + " FROM stations").WithContext(ctx).Iter()
	stations := make([]models.Station, 0)
	for {
		st, ok := scanStation(iter)
		if !ok {
			break
		}
		stations = append(stations, st)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return stations, nil
}

// ListStationsByOwner retourne les bornes d'un station master
func (s *Store) ListStationsByOwner(ctx context.Context, ownerID gocql.UUID) ([]models.Station, error) {
	session, err := database.GetStationsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT station_id, name, address, city, latitude, longitude, connector_type,
		power_kw, price_per_hour, approval_status, status, photo_url, created_at
		FROM stations_by_owner WHERE owner_id = ?`, ownerID).WithContext(ctx).Iter()

	stations := make([]models.Station, 0)
	var st models.Station
	for iter.Scan(&st.ID, &st.Name, &st.Address, &st.City, &st.Latitude, &st.Longitude,
		&st.ConnectorType, &st.PowerKW, &st.PricePerHour, &st.ApprovalStatus,
		&st.Status, &st.PhotoURL, &st.CreatedAt) {
		st.OwnerID = ownerID
		stations = append(stations, st)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return stations, nil
}

// ListStationsByApprovalStatus filtre sur le statut d'approbation.
// ALLOW FILTERING : surface admin uniquement, volume faible
func (s *Store) ListStationsByApprovalStatus(ctx context.Context, status string) ([]models.Station, error) {
	session, err := database.GetStationsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query("SELECT "+stationColumns+" FROM stations WHERE approval_status = ? ALLOW FILTERING",
		status).WithContext(ctx).Iter()
	stations := make([]models.Station, 0)
	for {
		st, ok := scanStation(iter)
		if !ok {
			break
		}
		stations = append(stations, st)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return stations, nil
}

// UpdateStationApprovalStatus écrase le statut d'approbation.
// IF EXISTS : une borne inconnue doit échouer, pas être créée
func (s *Store) UpdateStationApprovalStatus(ctx context.Context, id gocql.UUID, status string) error {
	session, err := database.GetStationsSession()
	if err != nil {
		return err
	}

	st, err := s.GetStation(ctx, id)
	if err != nil {
		return err
	}

	applied, err := session.Query("UPDATE stations SET approval_status = ? WHERE station_id = ? IF EXISTS",
		status, id).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return err
	}
	if !applied {
		return ErrNotFound
	}

	if err := session.Query("UPDATE stations_by_owner SET approval_status = ? WHERE owner_id = ? AND station_id = ?",
		status, st.OwnerID, id).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur index stations_by_owner: %v", err)
	}
	return nil
}

// UpdateStationStatus écrase le statut opérationnel (chaîne libre du propriétaire)
func (s *Store) UpdateStationStatus(ctx context.Context, id gocql.UUID, status string) error {
	session, err := database.GetStationsSession()
	if err != nil {
		return err
	}

	st, err := s.GetStation(ctx, id)
	if err != nil {
		return err
	}

	applied, err := session.Query("UPDATE stations SET status = ? WHERE station_id = ? IF EXISTS",
		status, id).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return err
	}
	if !applied {
		return ErrNotFound
	}

	if err := session.Query("UPDATE stations_by_owner SET status = ? WHERE owner_id = ? AND station_id = ?",
		status, st.OwnerID, id).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur index stations_by_owner: %v", err)
	}
	return nil
}

// UpdateStation met à jour les détails modifiables par le propriétaire
func (s *Store) UpdateStation(ctx context.Context, st models.Station) error {
	session, err := database.GetStationsSession()
	if err != nil {
		return err
	}

	applied, err := session.Query(`UPDATE stations SET name = ?, address = ?, city = ?, latitude = ?,
		longitude = ?, connector_type = ?, power_kw = ?, price_per_hour = ?
		WHERE station_id = ? IF EXISTS`,
		st.Name, st.Address, st.City, st.Latitude, st.Longitude, st.ConnectorType,
		st.PowerKW, st.PricePerHour, st.ID).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return err
	}
	if !applied {
		return ErrNotFound
	}

	if err := session.Query(`UPDATE stations_by_owner SET name = ?, address = ?, city = ?, latitude = ?,
		longitude = ?, connector_type = ?, power_kw = ?, price_per_hour = ?
		WHERE owner_id = ? AND station_id = ?`,
		st.Name, st.Address, st.City, st.Latitude, st.Longitude, st.ConnectorType,
		st.PowerKW, st.PricePerHour, st.OwnerID, st.ID).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur index stations_by_owner: %v", err)
	}
	return nil
}

// UpdateStationPhoto enregistre l'URL MinIO de la photo
func (s *Store) UpdateStationPhoto(ctx context.Context, id gocql.UUID, url string) error {
	session, err := database.GetStationsSession()
	if err != nil {
		return err
	}

	st, err := s.GetStation(ctx, id)
	if err != nil {
		return err
	}

	if err := session.Query("UPDATE stations SET photo_url = ? WHERE station_id = ?",
		url, id).WithContext(ctx).Exec(); err != nil {
		return err
	}
	if err := session.Query("UPDATE stations_by_owner SET photo_url = ? WHERE owner_id = ? AND station_id = ?",
		url, st.OwnerID, id).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur index stations_by_owner: %v", err)
	}
	return nil
}
