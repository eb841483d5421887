package service

import (
	"context"
	"errors"
	"testing"

	"raally_backend/internal/events"
	"raally_backend/internal/tenant/domain"
	"raally_backend/internal/tenant/repository"
	"raally_backend/platform/apperr"
	"raally_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeBus struct {
	published []events.Event
	syncErr   error
}

func (b *fakeBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *fakeBus) PublishSync(ctx context.Context, event events.Event) error {
	if b.syncErr != nil {
		return b.syncErr
	}
	b.published = append(b.published, event)
	return nil
}

func (b *fakeBus) Subscribe(eventName string, handler events.Handler) {}

type fakeRepo struct {
	tenants   map[uuid.UUID]repository.Tenant
	createErr error
	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tenants: make(map[uuid.UUID]repository.Tenant)}
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Tenant, error) {
	tenant, ok := r.tenants[id]
	if !ok {
		return repository.Tenant{}, apperr.NotFound("tenant not found")
	}
	return tenant, nil
}

func (r *fakeRepo) Create(ctx context.Context, params repository.CreateParams) (repository.Tenant, error) {
	if r.createErr != nil {
		return repository.Tenant{}, r.createErr
	}
	tenant := repository.Tenant{
		ID:         uuid.New(),
		Name:       params.Name,
		Plan:       domain.PlanFree,
		PlanStatus: domain.PlanStatusActive,
	}
	r.tenants[tenant.ID] = tenant
	return tenant, nil
}

func (r *fakeRepo) UpdatePlanOwner(ctx context.Context, id uuid.UUID, plan domain.PlanTier, status domain.PlanStatus, planUserID uuid.UUID, version int64) (repository.Tenant, error) {
	if r.updateErr != nil {
		return repository.Tenant{}, r.updateErr
	}
	tenant, ok := r.tenants[id]
	if !ok {
		return repository.Tenant{}, apperr.NotFound("tenant not found")
	}
	if tenant.Version != version {
		return repository.Tenant{}, apperr.Conflict("tenant was modified concurrently")
	}
	tenant.Plan = plan
	tenant.PlanStatus = status
	tenant.PlanUserID = &planUserID
	tenant.Version++
	r.tenants[id] = tenant
	return tenant, nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func newTestService(repo repository.Repository) (*Service, *fakeBus) {
	bus := &fakeBus{}
	return New(repo, bus, logger.New("development")), bus
}

func TestCreateAnnouncesTenantSynchronously(t *testing.T) {
	repo := newFakeRepo()
	svc, bus := newTestService(repo)
	owner := uuid.New()

	tenant, err := svc.Create(context.Background(), "  Acme Corp  ", owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tenant.Name != "Acme Corp" {
		t.Fatalf("expected trimmed name, got %q", tenant.Name)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected one event, got %d", len(bus.published))
	}
	created, ok := bus.published[0].(events.TenantCreated)
	if !ok {
		t.Fatalf("expected TenantCreated, got %T", bus.published[0])
	}
	if created.TenantID != tenant.ID || created.OwnerUserID != owner {
		t.Fatalf("event carries wrong ids: %+v", created)
	}
}

func TestCreateFailsWhenAnnouncementFails(t *testing.T) {
	repo := newFakeRepo()
	svc, bus := newTestService(repo)
	bus.syncErr = errors.New("subscriber down")

	_, err := svc.Create(context.Background(), "Acme Corp", uuid.New())
	if err == nil {
		t.Fatal("expected the subscriber failure to surface")
	}
}

func TestAssignPlanOwnerConflictsOnStaleVersion(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	tenant, err := svc.Create(context.Background(), "Acme Corp", uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.AssignPlanOwner(context.Background(), tenant.ID, domain.PlanGrowth, uuid.New(), tenant.Version); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.AssignPlanOwner(context.Background(), tenant.ID, domain.PlanGrowth, uuid.New(), tenant.Version)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on stale version, got %v", err)
	}
}

func TestAssignPlanOwnerRejectsFreePlan(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	_, err := svc.AssignPlanOwner(context.Background(), uuid.New(), domain.PlanFree, uuid.New(), 0)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for free plan, got %v", err)
	}
}

func TestCreateWrapsStoreFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("connection refused")
	svc, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), "Acme Corp", uuid.New())
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
