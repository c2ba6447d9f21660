package driverrate_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fleetpay/internal/driverrate"
	driverrateerrors "fleetpay/internal/driverrate/errors"
)

type fakeRateRepository struct {
	withTxFn          func(tx *gorm.DB) driverrate.Repository
	createFn          func(ctx context.Context, rate *driverrate.DriverRate) error
	saveFn            func(ctx context.Context, rate *driverrate.DriverRate) error
	findByIDFn        func(ctx context.Context, companyID, id string) (*driverrate.DriverRate, error)
	findAllByDriverFn func(ctx context.Context, companyID, driverID string) ([]driverrate.DriverRate, error)
	findOverlappingFn func(ctx context.Context, companyID, driverID string, from, to time.Time, excludeRateID *string) ([]driverrate.DriverRate, error)
	resolveAtFn       func(ctx context.Context, companyID, driverID string, day time.Time) (*driverrate.DriverRate, error)
	lockFn            func(ctx context.Context, driverID string) error
}

func (f *fakeRateRepository) WithTx(tx *gorm.DB) driverrate.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRateRepository) Create(ctx context.Context, rate *driverrate.DriverRate) error {
	if f.createFn != nil {
		return f.createFn(ctx, rate)
	}
	return nil
}

func (f *fakeRateRepository) Save(ctx context.Context, rate *driverrate.DriverRate) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, rate)
	}
	return nil
}

func (f *fakeRateRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*driverrate.DriverRate, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRateRepository) FindAllByDriver(ctx context.Context, companyID, driverID string) ([]driverrate.DriverRate, error) {
	if f.findAllByDriverFn != nil {
		return f.findAllByDriverFn(ctx, companyID, driverID)
	}
	return nil, nil
}

func (f *fakeRateRepository) FindOverlapping(ctx context.Context, companyID, driverID string, from, to time.Time, excludeRateID *string) ([]driverrate.DriverRate, error) {
	if f.findOverlappingFn != nil {
		return f.findOverlappingFn(ctx, companyID, driverID, from, to, excludeRateID)
	}
	return nil, nil
}

func (f *fakeRateRepository) ResolveAt(ctx context.Context, companyID, driverID string, day time.Time) (*driverrate.DriverRate, error) {
	if f.resolveAtFn != nil {
		return f.resolveAtFn(ctx, companyID, driverID, day)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRateRepository) LockDriverTimeline(ctx context.Context, driverID string) error {
	if f.lockFn != nil {
		return f.lockFn(ctx, driverID)
	}
	return nil
}

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	assert.NoError(t, err)

	return db, mock
}

func mustDate(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", v)
	assert.NoError(t, err)
	return d
}

func TestUpdateTruncatesEarlierOpenEndedRate(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	companyID := uuid.New()
	driverID := uuid.New()
	actorID := uuid.New()

	// Rate A: open-ended since 2025-01-01. Rate B starts 2025-03-01 and is
	// being moved back to 2025-02-10; A must end on 2025-02-09.
	rateA := driverrate.DriverRate{
		ID:            uuid.New(),
		CompanyID:     companyID,
		DriverID:      driverID,
		RateType:      driverrate.RateTypePerStop,
		BaseAmount:    decimal.RequireFromString("2.50"),
		EffectiveFrom: mustDate(t, "2025-01-01"),
	}
	rateB := driverrate.DriverRate{
		ID:            uuid.New(),
		CompanyID:     companyID,
		DriverID:      driverID,
		RateType:      driverrate.RateTypePerStop,
		BaseAmount:    decimal.RequireFromString("2.75"),
		EffectiveFrom: mustDate(t, "2025-03-01"),
	}

	var saved []driverrate.DriverRate
	repo := &fakeRateRepository{
		findByIDFn: func(ctx context.Context, gotCompany, id string) (*driverrate.DriverRate, error) {
			assert.Equal(t, companyID.String(), gotCompany)
			b := rateB
			return &b, nil
		},
		findOverlappingFn: func(ctx context.Context, _, _ string, from, to time.Time, excludeRateID *string) ([]driverrate.DriverRate, error) {
			assert.NotNil(t, excludeRateID)
			assert.Equal(t, rateB.ID.String(), *excludeRateID)
			return []driverrate.DriverRate{rateA}, nil
		},
		saveFn: func(ctx context.Context, rate *driverrate.DriverRate) error {
			saved = append(saved, *rate)
			return nil
		},
	}

	svc := driverrate.NewService(db, repo)

	resp, err := svc.Update(context.Background(), companyID.String(), actorID.String(), rateB.ID.String(), driverrate.UpdateDriverRateRequest{
		RateType:      driverrate.RateTypePerStop,
		BaseAmount:    decimal.RequireFromString("2.75"),
		EffectiveFrom: "2025-02-10",
	})

	assert.NoError(t, err)
	assert.Len(t, saved, 2)

	truncated := saved[0]
	assert.Equal(t, rateA.ID, truncated.ID)
	assert.NotNil(t, truncated.EffectiveTo)
	assert.Equal(t, "2025-02-09", truncated.EffectiveTo.Format("2006-01-02"))

	assert.Equal(t, "2025-02-10", resp.EffectiveFrom)
	assert.Nil(t, resp.EffectiveTo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRejectsWhenFutureRateExists(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	companyID := uuid.New()
	driverID := uuid.New()

	target := driverrate.DriverRate{
		ID:            uuid.New(),
		CompanyID:     companyID,
		DriverID:      driverID,
		RateType:      driverrate.RateTypePerRoute,
		BaseAmount:    decimal.RequireFromString("120"),
		EffectiveFrom: mustDate(t, "2025-01-01"),
	}
	future := driverrate.DriverRate{
		ID:            uuid.New(),
		CompanyID:     companyID,
		DriverID:      driverID,
		EffectiveFrom: mustDate(t, "2025-06-01"),
	}

	saves := 0
	repo := &fakeRateRepository{
		findByIDFn: func(ctx context.Context, _, _ string) (*driverrate.DriverRate, error) {
			tgt := target
			return &tgt, nil
		},
		findOverlappingFn: func(ctx context.Context, _, _ string, from, to time.Time, _ *string) ([]driverrate.DriverRate, error) {
			return []driverrate.DriverRate{future}, nil
		},
		saveFn: func(ctx context.Context, rate *driverrate.DriverRate) error {
			saves++
			return nil
		},
	}

	svc := driverrate.NewService(db, repo)

	_, err := svc.Update(context.Background(), companyID.String(), uuid.New().String(), target.ID.String(), driverrate.UpdateDriverRateRequest{
		RateType:      driverrate.RateTypePerRoute,
		BaseAmount:    decimal.RequireFromString("120"),
		EffectiveFrom: "2025-05-01",
	})

	assert.ErrorIs(t, err, driverrateerrors.ErrFutureRateExists)
	assert.Zero(t, saves, "no rate may be written when the plan is rejected")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTakesTimelineLockBeforeReadingOverlaps(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	companyID := uuid.New()
	driverID := uuid.New()

	var order []string
	repo := &fakeRateRepository{
		lockFn: func(ctx context.Context, gotDriver string) error {
			assert.Equal(t, driverID.String(), gotDriver)
			order = append(order, "lock")
			return nil
		},
		findOverlappingFn: func(ctx context.Context, _, _ string, _, _ time.Time, _ *string) ([]driverrate.DriverRate, error) {
			order = append(order, "read")
			return nil, nil
		},
		createFn: func(ctx context.Context, rate *driverrate.DriverRate) error {
			order = append(order, "create")
			return nil
		},
	}

	svc := driverrate.NewService(db, repo)

	_, err := svc.Create(context.Background(), companyID.String(), uuid.New().String(), driverrate.CreateDriverRateRequest{
		DriverID:      driverID.String(),
		RateType:      driverrate.RateTypePerStop,
		BaseAmount:    decimal.RequireFromString("2.50"),
		EffectiveFrom: "2025-01-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"lock", "read", "create"}, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveMissingRateNamesDriverAndDate(t *testing.T) {
	db, _ := newTestDB(t)

	driverID := uuid.New()
	repo := &fakeRateRepository{}
	svc := driverrate.NewService(db, repo)

	_, err := svc.Resolve(context.Background(), uuid.New().String(), driverID.String(), mustDate(t, "2025-04-07"))

	assert.ErrorIs(t, err, driverrateerrors.ErrNoRateForDate)
	assert.Contains(t, err.Error(), driverID.String())
	assert.Contains(t, err.Error(), "2025-04-07")
}

func TestCreateRejectsNegativeAmounts(t *testing.T) {
	db, _ := newTestDB(t)
	svc := driverrate.NewService(db, &fakeRateRepository{})

	_, err := svc.Create(context.Background(), uuid.New().String(), uuid.New().String(), driverrate.CreateDriverRateRequest{
		DriverID:      uuid.New().String(),
		RateType:      driverrate.RateTypePerStop,
		BaseAmount:    decimal.RequireFromString("-1"),
		EffectiveFrom: "2025-01-01",
	})

	assert.ErrorIs(t, err, driverrateerrors.ErrNegativeAmount)
}
