package driverrate

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fleetpay/internal/tenant"
)

//go:generate mockgen -source=driverrate_repo.go -destination=mock/driverrate_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rate *DriverRate) error
	Save(ctx context.Context, rate *DriverRate) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*DriverRate, error)
	FindAllByDriver(ctx context.Context, companyID, driverID string) ([]DriverRate, error)
	FindOverlapping(ctx context.Context, companyID, driverID string, from, to time.Time, excludeRateID *string) ([]DriverRate, error)
	ResolveAt(ctx context.Context, companyID, driverID string, day time.Time) (*DriverRate, error)
	LockDriverTimeline(ctx context.Context, driverID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rate *DriverRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *repository) Save(ctx context.Context, rate *DriverRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*DriverRate, error) {
	var rate DriverRate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&rate, "id = ?", id).Error
	return &rate, err
}

func (r *repository) FindAllByDriver(ctx context.Context, companyID, driverID string) ([]DriverRate, error) {
	var rates []DriverRate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("driver_id = ?", driverID).
		Order("effective_from ASC").
		Find(&rates).Error
	return rates, err
}

// FindOverlapping returns the rates whose interval intersects [from, to].
// An open-ended stored rate (effective_to IS NULL) intersects everything
// from its start onward.
func (r *repository) FindOverlapping(
	ctx context.Context,
	companyID, driverID string,
	from, to time.Time,
	excludeRateID *string,
) ([]DriverRate, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("driver_id = ?", driverID).
		Where("effective_from <= ?", to).
		Where("effective_to IS NULL OR effective_to >= ?", from)

	if excludeRateID != nil && *excludeRateID != "" {
		db = db.Where("id <> ?", *excludeRateID)
	}

	var rates []DriverRate
	err := db.Order("effective_from ASC").Find(&rates).Error
	return rates, err
}

func (r *repository) ResolveAt(ctx context.Context, companyID, driverID string, day time.Time) (*DriverRate, error) {
	var rate DriverRate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("driver_id = ?", driverID).
		Where("effective_from <= ?", day).
		Where("effective_to IS NULL OR effective_to >= ?", day).
		First(&rate).Error
	return &rate, err
}

// LockDriverTimeline takes a transaction-scoped advisory lock keyed by the
// driver id. Two concurrent timeline edits for the same driver serialize on
// it; without this the fetch-overlaps/classify/write sequence can interleave
// and produce overlapping intervals.
func (r *repository) LockDriverTimeline(ctx context.Context, driverID string) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", driverID).Error
}
