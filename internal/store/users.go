package store

import (
	"context"
	"errors"
	"time"

	"evcharge_back_end/internal/database"
	"evcharge_back_end/internal/models"

	"github.com/gocql/gocql"
)

// CreateUser insère l'utilisateur et son index par email
func (s *Store) CreateUser(ctx context.Context, u models.User) error {
	session, err := database.GetUsersSession()
	if err != nil {
		return err
	}

	// Index email → user_id d'abord : un login ne doit jamais trouver
	// un email sans utilisateur derrière
	if stmt := database.GetPreparedInsertUserByEmail(); stmt != nil {
		err = stmt.Bind(u.Email, u.ID).WithContext(ctx).Exec()
	} else {
		err = session.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?)",
			u.Email, u.ID).WithContext(ctx).Exec()
	}
	if err != nil {
		return err
	}

	if stmt := database.GetPreparedInsertUser(); stmt != nil {
		return stmt.Bind(u.ID, u.Email, u.Password, u.Name, u.Role, u.Provider, u.ProviderID,
			u.CreatedAt, u.UpdatedAt).WithContext(ctx).Exec()
	}
	return session.Query(`INSERT INTO users (user_id, email, password, name, role, provider, provider_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Password, u.Name, u.Role, u.Provider, u.ProviderID,
		u.CreatedAt, u.UpdatedAt).WithContext(ctx).Exec()
}

// GetUser récupère un utilisateur par son identifiant
func (s *Store) GetUser(ctx context.Context, id gocql.UUID) (*models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	u := models.User{ID: id}
	q := database.GetPreparedGetUserByID()
	if q != nil {
		err = q.Bind(id).WithContext(ctx).Scan(&u.Email, &u.Password, &u.Name, &u.Role,
			&u.Provider, &u.ProviderID, &u.CreatedAt, &u.UpdatedAt)
	} else {
		err = session.Query(`SELECT email, password, name, role, provider, provider_id, created_at, updated_at
			FROM users WHERE user_id = ?`, id).WithContext(ctx).
			Scan(&u.Email, &u.Password, &u.Name, &u.Role, &u.Provider, &u.ProviderID, &u.CreatedAt, &u.UpdatedAt)
	}
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail passe par la table d'index users_by_email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	var userID gocql.UUID
	if stmt := database.GetPreparedGetUserByEmail(); stmt != nil {
		err = stmt.Bind(email).WithContext(ctx).Scan(&userID)
	} else {
		err = session.Query("SELECT user_id FROM users_by_email WHERE email = ?", email).
			WithContext(ctx).Scan(&userID)
	}
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return s.GetUser(ctx, userID)
}

// ListUsers retourne tous les utilisateurs (surface admin, volume faible)
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT user_id, email, name, role, provider, created_at, updated_at
		FROM users`).WithContext(ctx).Iter()

	users := make([]models.User, 0)
	var (
		id                    gocql.UUID
		email, name, role     string
		provider              string
		createdAt, updatedAt  time.Time
	)
	for iter.Scan(&id, &email, &name, &role, &provider, &createdAt, &updatedAt) {
		users = append(users, models.User{
			ID: id, Email: email, Name: name, Role: role,
			Provider: provider, CreatedAt: createdAt, UpdatedAt: updatedAt,
		})
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserProfile met à jour le nom de l'utilisateur
func (s *Store) UpdateUserProfile(ctx context.Context, id gocql.UUID, name string) error {
	session, err := database.GetUsersSession()
	if err != nil {
		return err
	}

	applied, err := session.Query("UPDATE users SET name = ?, updated_at = ? WHERE user_id = ? IF EXISTS",
		name, time.Now(), id).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return err
	}
	if !applied {
		return ErrNotFound
	}
	return nil
}

// UpdateUserPassword écrase le hash du mot de passe
func (s *Store) UpdateUserPassword(ctx context.Context, id gocql.UUID, hash string) error {
	session, err := database.GetUsersSession()
	if err != nil {
		return err
	}

	applied, err := session.Query("UPDATE users SET password = ?, updated_at = ? WHERE user_id = ? IF EXISTS",
		hash, time.Now(), id).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return err
	}
	if !applied {
		return ErrNotFound
	}
	return nil
}
