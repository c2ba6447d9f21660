package route

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fleetpay/internal/tenant"
)

//go:generate mockgen -source=route_repo.go -destination=mock/route_repo_mock.go -package=mock
type Repository interface {
	// FindCompletedInRange returns every completed route in [from, to],
	// optionally narrowed to one warehouse and/or zone, with package
	// weights preloaded.
	FindCompletedInRange(ctx context.Context, companyID string, warehouseID, zoneID *string, from, to time.Time) ([]CompletedRoute, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindCompletedInRange(
	ctx context.Context,
	companyID string,
	warehouseID, zoneID *string,
	from, to time.Time,
) ([]CompletedRoute, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusCompleted).
		Where("route_date BETWEEN ? AND ?", from, to).
		Preload("Packages")

	if warehouseID != nil && *warehouseID != "" {
		db = db.Where("warehouse_id = ?", *warehouseID)
	}
	if zoneID != nil && *zoneID != "" {
		db = db.Where("zone_id = ?", *zoneID)
	}

	var routes []CompletedRoute
	err := db.Order("route_date ASC, id ASC").Find(&routes).Error
	return routes, err
}
