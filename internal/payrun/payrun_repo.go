package payrun

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"fleetpay/internal/tenant"
)

//go:generate mockgen -source=payrun_repo.go -destination=mock/payrun_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreatePeriod(ctx context.Context, period *PayPeriod) error
	SavePeriod(ctx context.Context, period *PayPeriod) error
	FindPeriodByID(ctx context.Context, companyID, id string) (*PayPeriod, error)
	FindPeriodByScope(ctx context.Context, companyID string, warehouseID *string, start, end time.Time) (*PayPeriod, error)
	ListPeriods(ctx context.Context, companyID string) ([]PayPeriod, error)

	CreateRun(ctx context.Context, run *PayRun) error
	SaveRun(ctx context.Context, run *PayRun) error
	ReplaceLines(ctx context.Context, runID uuid.UUID, lines []PayRunLine) error
	FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*PayRun, error)
	FindRunsByPeriod(ctx context.Context, companyID, periodID string) ([]PayRun, error)

	CreateAdjustment(ctx context.Context, adj *Adjustment) error
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

func (r *repository) CreatePeriod(ctx context.Context, period *PayPeriod) error {
	return r.db.WithContext(ctx).Create(period).Error
}

func (r *repository) SavePeriod(ctx context.Context, period *PayPeriod) error {
	return r.db.WithContext(ctx).Save(period).Error
}

func (r *repository) FindPeriodByID(ctx context.Context, companyID, id string) (*PayPeriod, error) {
	var period PayPeriod
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&period, "id = ?", id).Error
	return &period, err
}

func (r *repository) FindPeriodByScope(
	ctx context.Context,
	companyID string,
	warehouseID *string,
	start, end time.Time,
) (*PayPeriod, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("start_date = ? AND end_date = ?", start, end)

	if warehouseID != nil && *warehouseID != "" {
		db = db.Where("warehouse_id = ?", *warehouseID)
	} else {
		db = db.Where("warehouse_id IS NULL")
	}

	var period PayPeriod
	err := db.First(&period).Error
	return &period, err
}

func (r *repository) ListPeriods(ctx context.Context, companyID string) ([]PayPeriod, error) {
	var periods []PayPeriod
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("start_date DESC").
		Find(&periods).Error
	return periods, err
}

func (r *repository) CreateRun(ctx context.Context, run *PayRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) SaveRun(ctx context.Context, run *PayRun) error {
	return r.db.WithContext(ctx).
		Omit("Lines", "AdjustmentEntries").
		Save(run).Error
}

// ReplaceLines swaps a run's line items wholesale. Recomputation regenerates
// every line, so partial updates are never needed.
func (r *repository) ReplaceLines(ctx context.Context, runID uuid.UUID, lines []PayRunLine) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("pay_run_id = ?", runID).Delete(&PayRunLine{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return db.Create(&lines).Error
}

func (r *repository) FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*PayRun, error) {
	var run PayRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Lines").
		Preload("AdjustmentEntries").
		First(&run, "id = ?", id).Error
	return &run, err
}

func (r *repository) FindRunsByPeriod(ctx context.Context, companyID, periodID string) ([]PayRun, error) {
	var runs []PayRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("pay_period_id = ?", periodID).
		Preload("Lines").
		Preload("AdjustmentEntries").
		Order("driver_id ASC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) CreateAdjustment(ctx context.Context, adj *Adjustment) error {
	return r.db.WithContext(ctx).Create(adj).Error
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
