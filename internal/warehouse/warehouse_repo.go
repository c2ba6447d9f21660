package warehouse

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleetpay/internal/tenant"
)

//go:generate mockgen -source=warehouse_repo.go -destination=mock/warehouse_repo_mock.go -package=mock
type Repository interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Warehouse, error)

	// ZoneRequiredFlags resolves the zone-required flag for every warehouse
	// of the company in one query. The materializer calls this once per
	// batch instead of re-deriving the flag per route.
	ZoneRequiredFlags(ctx context.Context, companyID string) (map[uuid.UUID]bool, error)

	FindNamesByIDs(ctx context.Context, companyID string, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Warehouse, error) {
	var wh Warehouse
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&wh, "id = ?", id).Error
	return &wh, err
}

func (r *repository) ZoneRequiredFlags(ctx context.Context, companyID string) (map[uuid.UUID]bool, error) {
	var warehouses []Warehouse
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Select("id", "zone_required").
		Find(&warehouses).Error
	if err != nil {
		return nil, err
	}

	flags := make(map[uuid.UUID]bool, len(warehouses))
	for _, wh := range warehouses {
		flags[wh.ID] = wh.ZoneRequired
	}
	return flags, nil
}

func (r *repository) FindNamesByIDs(ctx context.Context, companyID string, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	var warehouses []Warehouse
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Select("id", "name").
		Where("id IN ?", ids).
		Find(&warehouses).Error
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(warehouses))
	for _, wh := range warehouses {
		names[wh.ID] = wh.Name
	}
	return names, nil
}
