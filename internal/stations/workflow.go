// Package stations porte le cycle d'approbation des bornes :
// Pending → Approved ou Pending → Rejected, piloté par l'admin.
package stations

import (
	"context"

	"evcharge_back_end/internal/models"

	"github.com/gocql/gocql"
)

type Gateway interface {
	UpdateStationApprovalStatus(ctx context.Context, id gocql.UUID, status string) error
	ListStationsByApprovalStatus(ctx context.Context, status string) ([]models.Station, error)
}

type Workflow struct {
	gw Gateway
}

func NewWorkflow(gw Gateway) *Workflow {
	return &Workflow{gw: gw}
}

// Approve passe la borne en Approved. Ré-approuver une borne déjà
// approuvée est accepté, l'écriture est idempotente
func (w *Workflow) Approve(ctx context.Context, id gocql.UUID) error {
	return w.gw.UpdateStationApprovalStatus(ctx, id, models.StationApproved)
}

// Reject passe la borne en Rejected, mêmes règles qu'Approve
func (w *Workflow) Reject(ctx context.Context, id gocql.UUID) error {
	return w.gw.UpdateStationApprovalStatus(ctx, id, models.StationRejected)
}

// ListPending retourne les bornes en attente d'approbation
func (w *Workflow) ListPending(ctx context.Context) ([]models.Station, error) {
	return w.gw.ListStationsByApprovalStatus(ctx, models.StationPending)
}
