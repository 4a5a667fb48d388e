package costcenters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelier-erp/atelier-erp/internal/accounting/shared"
)

type memoryRepo struct {
	centers map[int64]CostCenter
	deleted map[int64]bool
	nextID  int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{centers: make(map[int64]CostCenter), deleted: make(map[int64]bool)}
}

func (r *memoryRepo) List(ctx context.Context, filters ListFilters) ([]CostCenter, int, error) {
	var out []CostCenter
	for id, cc := range r.centers {
		if r.deleted[id] {
			continue
		}
		out = append(out, cc)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (CostCenter, error) {
	cc, ok := r.centers[id]
	if !ok || r.deleted[id] {
		return CostCenter{}, shared.ErrCostCenterNotFound
	}
	return cc, nil
}

func (r *memoryRepo) Create(ctx context.Context, cc CostCenter) (int64, error) {
	r.nextID++
	cc.ID = r.nextID
	cc.CreatedAt = time.Now()
	cc.UpdatedAt = cc.CreatedAt
	r.centers[cc.ID] = cc
	return cc.ID, nil
}

func (r *memoryRepo) Update(ctx context.Context, cc CostCenter) error {
	if _, ok := r.centers[cc.ID]; !ok || r.deleted[cc.ID] {
		return shared.ErrCostCenterNotFound
	}
	cc.UpdatedAt = time.Now()
	r.centers[cc.ID] = cc
	return nil
}

func (r *memoryRepo) SoftDelete(ctx context.Context, id int64) error {
	if _, ok := r.centers[id]; !ok || r.deleted[id] {
		return shared.ErrCostCenterNotFound
	}
	r.deleted[id] = true
	return nil
}

func (r *memoryRepo) CodeInUse(ctx context.Context, code string, excludeID int64) (bool, error) {
	for id, cc := range r.centers {
		if r.deleted[id] || id == excludeID {
			continue
		}
		if cc.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCostCenterRequest{Code: "CC-01", Name: "Workshop"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateCostCenterRequest{Code: "CC-01", Name: "Workshop again"})
	require.ErrorIs(t, err, shared.ErrDuplicateCode)
}

func TestCodeReusableAfterSoftDelete(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateCostCenterRequest{Code: "CC-01", Name: "Workshop"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.Create(ctx, CreateCostCenterRequest{Code: "CC-01", Name: "Workshop v2"})
	require.NoError(t, err)
}

func TestUpdatePartialFields(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateCostCenterRequest{Code: "CC-01", Name: "Workshop", Type: "production"})
	require.NoError(t, err)

	name := "Main workshop"
	require.NoError(t, svc.Update(ctx, id, UpdateCostCenterRequest{Name: &name}))

	cc, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Main workshop", cc.Name)
	require.Equal(t, "CC-01", cc.Code)
	require.Equal(t, "production", cc.Type)
	require.True(t, cc.IsActive)
}

func TestUpdateMissingCostCenter(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	name := "renamed"
	err := svc.Update(context.Background(), 42, UpdateCostCenterRequest{Name: &name})
	require.ErrorIs(t, err, shared.ErrCostCenterNotFound)
}
