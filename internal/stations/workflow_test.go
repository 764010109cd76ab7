package stations

import (
	"context"
	"testing"

	"evcharge_back_end/internal/models"
	"evcharge_back_end/internal/store"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway garde les bornes en mémoire avec la même règle que le vrai
// store : mettre à jour une borne inconnue échoue au lieu de la créer
type fakeGateway struct {
	statuses map[gocql.UUID]string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{statuses: make(map[gocql.UUID]string)}
}

func (f *fakeGateway) UpdateStationApprovalStatus(ctx context.Context, id gocql.UUID, status string) error {
	if _, ok := f.statuses[id]; !ok {
		return store.ErrNotFound
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeGateway) ListStationsByApprovalStatus(ctx context.Context, status string) ([]models.Station, error) {
	out := make([]models.Station, 0)
	for id, st := range f.statuses {
		if st == status {
			out = append(out, models.Station{ID: id, ApprovalStatus: st})
		}
	}
	return out, nil
}

func TestApproveRemovesStationFromPendingList(t *testing.T) {
	gw := newFakeGateway()
	id := gocql.TimeUUID()
	gw.statuses[id] = models.StationPending
	wf := NewWorkflow(gw)

	require.NoError(t, wf.Approve(context.Background(), id))

	pending, err := wf.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Equal(t, models.StationApproved, gw.statuses[id])
}

func TestRejectRemovesStationFromPendingList(t *testing.T) {
	gw := newFakeGateway()
	id := gocql.TimeUUID()
	gw.statuses[id] = models.StationPending
	wf := NewWorkflow(gw)

	require.NoError(t, wf.Reject(context.Background(), id))

	pending, err := wf.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Equal(t, models.StationRejected, gw.statuses[id])
}

func TestApproveTwiceIsAllowed(t *testing.T) {
	gw := newFakeGateway()
	id := gocql.TimeUUID()
	gw.statuses[id] = models.StationPending
	wf := NewWorkflow(gw)

	require.NoError(t, wf.Approve(context.Background(), id))
	assert.NoError(t, wf.Approve(context.Background(), id))
}

func TestApproveUnknownStationFails(t *testing.T) {
	wf := NewWorkflow(newFakeGateway())

	err := wf.Approve(context.Background(), gocql.TimeUUID())

	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListPendingOnlyReturnsPendingStations(t *testing.T) {
	gw := newFakeGateway()
	pendingID := gocql.TimeUUID()
	gw.statuses[pendingID] = models.StationPending
	gw.statuses[gocql.TimeUUID()] = models.StationApproved
	wf := NewWorkflow(gw)

	pending, err := wf.ListPending(context.Background())

	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, pendingID, pending[0].ID)
}
