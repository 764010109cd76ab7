// Package store est la passerelle de persistance : toutes les lectures et
// écritures ScyllaDB passent par ici. Les handlers ne parlent jamais
// directement aux sessions.
package store

import (
	"errors"
)

// ErrNotFound est renvoyée quand l'enregistrement ciblé n'existe pas.
// Les mises à jour utilisent IF EXISTS pour ne jamais créer de ligne
// par upsert implicite.
var ErrNotFound = errors.New("enregistrement introuvable")

type Store struct{}

func New() *Store {
	return &Store{}
}
