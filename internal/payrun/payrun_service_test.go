package payrun_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fleetpay/internal/driverrate"
	driverrateerrors "fleetpay/internal/driverrate/errors"
	"fleetpay/internal/messaging/kafka"
	"fleetpay/internal/payrollconfig"
	"fleetpay/internal/payrun"
	payrunerrors "fleetpay/internal/payrun/errors"
	"fleetpay/internal/route"
	"fleetpay/internal/warehouse"
)

// ---- fakes ----

type fakeRunRepository struct {
	createPeriodFn      func(ctx context.Context, period *payrun.PayPeriod) error
	savePeriodFn        func(ctx context.Context, period *payrun.PayPeriod) error
	findPeriodByIDFn    func(ctx context.Context, companyID, id string) (*payrun.PayPeriod, error)
	findPeriodByScopeFn func(ctx context.Context, companyID string, warehouseID *string, start, end time.Time) (*payrun.PayPeriod, error)
	listPeriodsFn       func(ctx context.Context, companyID string) ([]payrun.PayPeriod, error)
	createRunFn         func(ctx context.Context, run *payrun.PayRun) error
	saveRunFn           func(ctx context.Context, run *payrun.PayRun) error
	replaceLinesFn      func(ctx context.Context, runID uuid.UUID, lines []payrun.PayRunLine) error
	findRunByIDFn       func(ctx context.Context, companyID, id string) (*payrun.PayRun, error)
	findRunsByPeriodFn  func(ctx context.Context, companyID, periodID string) ([]payrun.PayRun, error)
	createAdjustmentFn  func(ctx context.Context, adj *payrun.Adjustment) error
}

func (f *fakeRunRepository) WithTx(tx *gorm.DB) payrun.Repository { return f }

func (f *fakeRunRepository) CreatePeriod(ctx context.Context, period *payrun.PayPeriod) error {
	return f.createPeriodFn(ctx, period)
}

func (f *fakeRunRepository) SavePeriod(ctx context.Context, period *payrun.PayPeriod) error {
	return f.savePeriodFn(ctx, period)
}

func (f *fakeRunRepository) FindPeriodByID(ctx context.Context, companyID, id string) (*payrun.PayPeriod, error) {
	return f.findPeriodByIDFn(ctx, companyID, id)
}

func (f *fakeRunRepository) FindPeriodByScope(ctx context.Context, companyID string, warehouseID *string, start, end time.Time) (*payrun.PayPeriod, error) {
	return f.findPeriodByScopeFn(ctx, companyID, warehouseID, start, end)
}

func (f *fakeRunRepository) ListPeriods(ctx context.Context, companyID string) ([]payrun.PayPeriod, error) {
	return f.listPeriodsFn(ctx, companyID)
}

func (f *fakeRunRepository) CreateRun(ctx context.Context, run *payrun.PayRun) error {
	return f.createRunFn(ctx, run)
}

func (f *fakeRunRepository) SaveRun(ctx context.Context, run *payrun.PayRun) error {
	return f.saveRunFn(ctx, run)
}

func (f *fakeRunRepository) ReplaceLines(ctx context.Context, runID uuid.UUID, lines []payrun.PayRunLine) error {
	return f.replaceLinesFn(ctx, runID, lines)
}

func (f *fakeRunRepository) FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*payrun.PayRun, error) {
	return f.findRunByIDFn(ctx, companyID, id)
}

func (f *fakeRunRepository) FindRunsByPeriod(ctx context.Context, companyID, periodID string) ([]payrun.PayRun, error) {
	return f.findRunsByPeriodFn(ctx, companyID, periodID)
}

func (f *fakeRunRepository) CreateAdjustment(ctx context.Context, adj *payrun.Adjustment) error {
	return f.createAdjustmentFn(ctx, adj)
}

type fakeRateService struct {
	resolveFn func(ctx context.Context, companyID, driverID string, day time.Time) (*driverrate.DriverRate, error)
}

func (f *fakeRateService) Create(ctx context.Context, companyID, actorID string, req driverrate.CreateDriverRateRequest) (driverrate.DriverRateResponse, error) {
	panic("not used")
}

func (f *fakeRateService) Update(ctx context.Context, companyID, actorID, id string, req driverrate.UpdateDriverRateRequest) (driverrate.DriverRateResponse, error) {
	panic("not used")
}

func (f *fakeRateService) GetByID(ctx context.Context, companyID, id string) (driverrate.DriverRateResponse, error) {
	panic("not used")
}

func (f *fakeRateService) ListByDriver(ctx context.Context, companyID, driverID string) ([]driverrate.DriverRateResponse, error) {
	panic("not used")
}

func (f *fakeRateService) Resolve(ctx context.Context, companyID, driverID string, day time.Time) (*driverrate.DriverRate, error) {
	return f.resolveFn(ctx, companyID, driverID, day)
}

type fakeRouteRepository struct {
	findCompletedFn func(ctx context.Context, companyID string, warehouseID, zoneID *string, from, to time.Time) ([]route.CompletedRoute, error)
}

func (f *fakeRouteRepository) FindCompletedInRange(ctx context.Context, companyID string, warehouseID, zoneID *string, from, to time.Time) ([]route.CompletedRoute, error) {
	return f.findCompletedFn(ctx, companyID, warehouseID, zoneID, from, to)
}

type fakeWarehouseRepository struct {
	zoneRequired map[uuid.UUID]bool
	names        map[uuid.UUID]string
}

func (f *fakeWarehouseRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*warehouse.Warehouse, error) {
	panic("not used")
}

func (f *fakeWarehouseRepository) ZoneRequiredFlags(ctx context.Context, companyID string) (map[uuid.UUID]bool, error) {
	return f.zoneRequired, nil
}

func (f *fakeWarehouseRepository) FindNamesByIDs(ctx context.Context, companyID string, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return f.names, nil
}

type fakeConfigService struct {
	resolveFn func(ctx context.Context, companyID, warehouseID string) (*payrollconfig.PayrollConfig, error)
}

func (f *fakeConfigService) CreateConfig(ctx context.Context, companyID string, req payrollconfig.CreateConfigRequest) (payrollconfig.ConfigResponse, error) {
	panic("not used")
}

func (f *fakeConfigService) UpdateConfig(ctx context.Context, companyID, id string, req payrollconfig.UpdateConfigRequest) (payrollconfig.ConfigResponse, error) {
	panic("not used")
}

func (f *fakeConfigService) GetByWarehouse(ctx context.Context, companyID, warehouseID string) (payrollconfig.ConfigResponse, error) {
	panic("not used")
}

func (f *fakeConfigService) AddWeightRule(ctx context.Context, companyID, configID string, req payrollconfig.CreateWeightRuleRequest) (payrollconfig.ConfigResponse, error) {
	panic("not used")
}

func (f *fakeConfigService) AddPenaltyRule(ctx context.Context, companyID, configID string, req payrollconfig.CreatePenaltyRuleRequest) (payrollconfig.ConfigResponse, error) {
	panic("not used")
}

func (f *fakeConfigService) AddBonusRule(ctx context.Context, companyID, configID string, req payrollconfig.CreateBonusRuleRequest) (payrollconfig.ConfigResponse, error) {
	panic("not used")
}

func (f *fakeConfigService) RemoveWeightRule(ctx context.Context, companyID, configID, ruleID string) error {
	panic("not used")
}

func (f *fakeConfigService) RemovePenaltyRule(ctx context.Context, companyID, configID, ruleID string) error {
	panic("not used")
}

func (f *fakeConfigService) RemoveBonusRule(ctx context.Context, companyID, configID, ruleID string) error {
	panic("not used")
}

func (f *fakeConfigService) ResolveForWarehouse(ctx context.Context, companyID, warehouseID string) (*payrollconfig.PayrollConfig, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, companyID, warehouseID)
	}
	return nil, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

// ---- helpers ----

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	companyID   uuid.UUID
	actorID     uuid.UUID
	warehouseID uuid.UUID
	periodStart time.Time
	periodEnd   time.Time
	period      *payrun.PayPeriod
}

func newFixture() *fixture {
	f := &fixture{
		companyID:   uuid.New(),
		actorID:     uuid.New(),
		warehouseID: uuid.New(),
		periodStart: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		periodEnd:   time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
	}
	f.period = &payrun.PayPeriod{
		ID:        uuid.New(),
		CompanyID: f.companyID,
		StartDate: f.periodStart,
		EndDate:   f.periodEnd,
		Status:    payrun.PeriodStatusOpen,
		CreatedBy: f.actorID,
	}
	return f
}

func (f *fixture) completedRoute(driverID uuid.UUID, mutate func(*route.CompletedRoute)) route.CompletedRoute {
	rt := route.CompletedRoute{
		ID:          uuid.New(),
		CompanyID:   f.companyID,
		WarehouseID: f.warehouseID,
		DriverID:    driverID,
		RouteDate:   f.periodStart.AddDate(0, 0, 1),
		Status:      route.StatusCompleted,
		DeliveryStops: 20,
	}
	if mutate != nil {
		mutate(&rt)
	}
	return rt
}

func perRouteRate(companyID, driverID uuid.UUID, base string) *driverrate.DriverRate {
	return &driverrate.DriverRate{
		ID:            uuid.New(),
		CompanyID:     companyID,
		DriverID:      driverID,
		RateType:      driverrate.RateTypePerRoute,
		BaseAmount:    dec(base),
		EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func materializeRequest(f *fixture) payrun.MaterializePeriodRequest {
	return payrun.MaterializePeriodRequest{
		StartDate: f.periodStart.Format("2006-01-02"),
		EndDate:   f.periodEnd.Format("2006-01-02"),
	}
}

func defaultRepo(f *fixture) *fakeRunRepository {
	return &fakeRunRepository{
		findPeriodByScopeFn: func(ctx context.Context, companyID string, warehouseID *string, start, end time.Time) (*payrun.PayPeriod, error) {
			return f.period, nil
		},
		findPeriodByIDFn: func(ctx context.Context, companyID, id string) (*payrun.PayPeriod, error) {
			return f.period, nil
		},
		findRunsByPeriodFn: func(ctx context.Context, companyID, periodID string) ([]payrun.PayRun, error) {
			return nil, nil
		},
	}
}

func newServiceUnderTest(
	t *testing.T,
	repo *fakeRunRepository,
	rates *fakeRateService,
	routes *fakeRouteRepository,
	warehouses *fakeWarehouseRepository,
	outbox *fakeOutboxRepository,
) (payrun.Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newTestDB(t)
	if warehouses == nil {
		warehouses = &fakeWarehouseRepository{}
	}
	svc := payrun.NewService(db, repo, rates, routes, warehouses, &fakeConfigService{}, outbox)
	return svc, mock
}

// ---- tests ----

func TestMaterializeCreatesRunPerDriver(t *testing.T) {
	f := newFixture()
	driverA := uuid.New()
	driverB := uuid.New()

	var created []*payrun.PayRun
	repo := defaultRepo(f)
	repo.createRunFn = func(ctx context.Context, run *payrun.PayRun) error {
		created = append(created, run)
		return nil
	}

	rates := &fakeRateService{
		resolveFn: func(ctx context.Context, companyID, driverID string, day time.Time) (*driverrate.DriverRate, error) {
			assert.True(t, day.Equal(f.periodStart), "rate must resolve at period start")
			return perRouteRate(f.companyID, uuid.MustParse(driverID), "100.00"), nil
		},
	}
	routes := &fakeRouteRepository{
		findCompletedFn: func(ctx context.Context, companyID string, warehouseID, zoneID *string, from, to time.Time) ([]route.CompletedRoute, error) {
			return []route.CompletedRoute{
				f.completedRoute(driverA, nil),
				f.completedRoute(driverB, nil),
			}, nil
		},
	}
	outbox := &fakeOutboxRepository{}

	svc, mock := newServiceUnderTest(t, repo, rates, routes, nil, outbox)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.MaterializePeriod(context.Background(), f.companyID.String(), f.actorID.String(), materializeRequest(f))

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Computed)
	assert.Equal(t, 0, resp.Failed)
	require.Len(t, created, 2)
	for _, run := range created {
		assert.True(t, run.GrossAmount.Equal(dec("100.00")))
		assert.True(t, run.NetAmount.Equal(dec("100.00")))
		assert.Equal(t, payrun.RunStatusDraft, run.Status)
		assert.Len(t, run.Lines, 1)
	}
	require.Len(t, outbox.created, 1)
	assert.Equal(t, "payroll.period.materialized", outbox.created[0].EventType)
}

func TestMaterializeSkipsExistingRunsWithoutRecompute(t *testing.T) {
	f := newFixture()
	driverA := uuid.New()
	driverB := uuid.New()

	existing := payrun.PayRun{
		ID:          uuid.New(),
		CompanyID:   f.companyID,
		PayPeriodID: f.period.ID,
		DriverID:    driverA,
		GrossAmount: dec("80.00"),
		NetAmount:   dec("80.00"),
		Status:      payrun.RunStatusDraft,
	}

	createCalls := 0
	repo := defaultRepo(f)
	repo.findRunsByPeriodFn = func(ctx context.Context, companyID, periodID string) ([]payrun.PayRun, error) {
		return []payrun.PayRun{existing}, nil
	}
	repo.createRunFn = func(ctx context.Context, run *payrun.PayRun) error {
		createCalls++
		assert.Equal(t, driverB, run.DriverID)
		return nil
	}

	rates := &fakeRateService{
		resolveFn: func(ctx context.Context, companyID, driverID string, day time.Time) (*driverrate.DriverRate, error) {
			return perRouteRate(f.companyID, uuid.MustParse(driverID), "100.00"), nil
		},
	}
	routes := &fakeRouteRepository{
		findCompletedFn: func(ctx context.Context, companyID string, warehouseID, zoneID *string, from, to time.Time) ([]route.CompletedRoute, error) {
			return []route.CompletedRoute{
				f.completedRoute(driverA, nil),
				f.completedRoute(driverB, nil),
			}, nil
		},
	}

	svc, mock := newServiceUnderTest(t, repo, rates, routes, nil, &fakeOutboxRepository{})
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.MaterializePeriod(context.Background(), f.companyID.String(), f.actorID.String(), materializeRequest(f))

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Computed)
	assert.Equal(t, 1, resp.Skipped)
	assert.Equal(t, 1, createCalls)

	for _, row := range resp.Drivers {
		if row.DriverID == driverA.String() {
			assert.Equal(t, "skipped", row.Status)
			assert.True(t, row.GrossAmount.Equal(dec("80.00")))
		}
	}
}

func TestMaterializeRecomputeReplacesLinesAndKeepsAdjustments(t *testing.T) {
	f := newFixture()
	driverA := uuid.New()

	existing := payrun.PayRun{
		ID:          uuid.New(),
		CompanyID:   f.companyID,
		PayPeriodID: f.period.ID,
		DriverID:    driverA,
		GrossAmount: dec("50.00"),
		Adjustments: dec("20.00"),
		NetAmount:   dec("70.00"),
		Status:      payrun.RunStatusDraft,
		AdjustmentEntries: []payrun.Adjustment{{
			ID:     uuid.New(),
			Type:   "BONUS",
			Amount: dec("20.00"),
		}},
	}

	var saved *payrun.PayRun
	replaced := false
	repo := defaultRepo(f)
	repo.findRunsByPeriodFn = func(ctx context.Context, companyID, periodID string) ([]payrun.PayRun, error) {
		return []payrun.PayRun{existing}, nil
	}
	repo.saveRunFn = func(ctx context.Context, run *payrun.PayRun) error {
		saved = run
		return nil
	}
	repo.replaceLinesFn = func(ctx context.Context, runID uuid.UUID, lines []payrun.PayRunLine) error {
		replaced = true
		assert.Equal(t, existing.ID, runID)
		assert.Len(t, lines, 1)
		return nil
	}

	rates := &fakeRateService{
		resolveFn: func(ctx context.Context, companyID, driverID string, day time.Time) (*driverrate.DriverRate, error) {
			return perRouteRate(f.companyID, driverA, "100.00"), nil
		},
	}
	routes := &fakeRouteRepository{
		findCompletedFn: func(ctx context.Context, companyID string, warehouseID, zoneID *string, from, to time.Time) ([]route.CompletedRoute, error) {
			return []route.CompletedRoute{f.completedRoute(driverA, nil)}, nil
		},
	}

	svc, mock := newServiceUnderTest(t, repo, rates, routes, nil, &fakeOutboxRepository{})
	mock.ExpectBegin()
	mock.ExpectCommit()

	req := materializeRequest(f)
	req.RecomputeAll = true
	resp, err := svc.MaterializePeriod(context.Background(), f.companyID.String(), f.actorID.String(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Computed)
	assert.True(t, replaced)
	require.NotNil(t, saved)
	assert.True(t, saved.GrossAmount.Equal(dec("100.00")))
	assert.True(t, saved.Adjustments.Equal(dec("20.00")), "recompute must not touch adjustments")
	assert.True(t, saved.NetAmount.Equal(dec("120.00")))
}

func TestMaterializeRecomputeNeverRewritesApprovedRun(t *testing.T) {
	f := newFixture()
	driverA := uuid.New()

	approvedAt := time.Now().UTC()
	existing := payrun.PayRun{
		ID:          uuid.New(),
		CompanyID:   f.companyID,
		PayPeriodID: f.period.ID,
		DriverID:    driverA,
		GrossAmount: dec("200.00"),
		NetAmount:   dec("200.00"),
		Status:      payrun.RunStatusApproved,
		ApprovedAt:  &approvedAt,
	}

	repo := defaultRepo(f)
	repo.findRunsByPeriodFn = func(ctx context.Context, companyID, periodID string) ([]payrun.PayRun, error) {
		return []payrun.PayRun{existing}, nil
	}
	repo.saveRunFn = func(ctx context.Context, run *payrun.PayRun) error {
		t.Fatal("an approved run must never be rewritten")
		return nil
	}
	repo.replaceLinesFn = func(ctx context.Context, runID uuid.UUID, lines []payrun.PayRunLine) error {
		t.Fatal("approved run lines must never be replaced")
		return nil
	}

	rates := &fakeRateService{
		resolveFn: func(ctx context.Context, companyID, driverID string, day time.Time) (*driverrate.DriverRate, error) {
			return perRouteRate(f.companyID, driverA, "50.00"), nil
		},
	}
	routes := &fakeRouteRepository{
		findCompletedFn: func(ctx context.Context, companyID string, warehouseID, zoneID *string, from, to time.Time) ([]route.CompletedRoute, error) {
			return []route.CompletedRoute{f.completedRoute(driverA, nil)}, nil
		},
	}

	svc, _ := newServiceUnderTest(t, repo, rates, routes, nil, &fakeOutboxRepository{})

	req := materializeRequest(f)
	req.RecomputeAll = true
	resp, err := svc.MaterializePeriod(context.Background(), f.companyID.String(), f.actorID.String(), req)

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Computed)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, resp.Drivers, 1)
	assert.Equal(t, "skipped", resp.Drivers[0].Status)
	assert.True(t, resp.Drivers[0].GrossAmount.Equal(dec("200.00")), "approved amount must be untouched")
}

func TestMaterializeCompanyWideInsertRaceReusesWinningPeriod(t *testing.T) {
	f := newFixture()
	driverA := uuid.New()

	winner := &payrun.PayPeriod{
		ID:        uuid.New(),
		CompanyID: f.companyID,
		StartDate: f.periodStart,
		EndDate:   f.periodEnd,
		Status:    payrun.PeriodStatusOpen,
		CreatedBy: uuid.New(),
	}

	scopeCalls := 0
	var created *payrun.PayRun
	repo := defaultRepo(f)
	repo.findPeriodByScopeFn = func(ctx context.Context, companyID string, warehouseID *string, start, end time.Time) (*payrun.PayPeriod, error) {
		scopeCalls++
		assert.Nil(t, warehouseID, "company-wide scope must look up with no warehouse")
		if scopeCalls == 1 {
			return nil, gorm.ErrRecordNotFound
		}
		return winner, nil
	}
	repo.createPeriodFn = func(ctx context.Context, period *payrun.PayPeriod) error {
		return &pgconn.PgError{Code: "23505"}
	}
	repo.findPeriodByIDFn = func(ctx context.Context, companyID, id string) (*payrun.PayPeriod, error) {
		return winner, nil
	}
	repo.createRunFn = func(ctx context.Context, run *payrun.PayRun) error {
		created = run
		return nil
	}

	rates := &fakeRateService{
		resolveFn: func(ctx context.Context, companyID, driverID string, day time.Time) (*driverrate.DriverRate, error) {
			return perRouteRate(f.companyID, driverA, "100.00"), nil
		},
	}
	routes := &fakeRouteRepository{
		findCompletedFn: func(ctx context.Context, companyID string, warehouseID, zoneID *string, from, to time.Time) ([]route.CompletedRoute, error) {
			return []route.CompletedRoute{f.completedRoute(driverA, nil)}, nil
		},
	}

	svc, mock := newServiceUnderTest(t, repo, rates, routes, nil, &fakeOutboxRepository{})
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.MaterializePeriod(context.Background(), f.companyID.String(), f.actorID.String(), materializeRequest(f))

	require.NoError(t, err)
	assert.Equal(t, 2, scopeCalls, "a lost insert race must re-read the winner")
	assert.Equal(t, winner.ID.String(), resp.Period.ID)
	require.NotNil(t, created)
	assert.Equal(t, winner.ID, created.PayPeriodID)
}

func TestMaterializeReportsUnclassifiedRoutes(t *testing.T) {
	f := newFixture()
	driverA := uuid.New()
	zoneID := uuid.New()

	var allRoutes []route.CompletedRoute
	for i := 0; i < 7; i++ {
		allRoutes = append(allRoutes, f.completedRoute(driverA, func(rt *route.CompletedRoute) {
			rt.ZoneID = &zoneID
		}))
	}
	for i := 0; i < 3; i++ {
		allRoutes = append(allRoutes, f.completedRoute(driverA, nil))
	}

	var created *payrun.PayRun
	repo := defaultRepo(f)
	repo.createRunFn = func(ctx context.Context, run *payrun.PayRun) error {
		created = run
		return nil
	}

	rates := &fakeRateService{
		resolveFn: func(ctx context.Context, companyID, driverID string, day time.Time) (*driverrate.DriverRate, error) {
			return perRouteRate(f.companyID, driverA, "100.00"), nil
		},
	}
	routes := &fakeRouteRepository{
		findCompletedFn: func(ctx context.Context, companyID string, warehouseID, zoneID *string, from, to time.Time) ([]route.CompletedRoute, error) {
			return allRoutes, nil
		},
	}
	warehouses := &fakeWarehouseRepository{
		zoneRequired: map[uuid.UUID]bool{f.warehouseID: true},
		names:        map[uuid.UUID]string{f.warehouseID: "North Hub"},
	}

	svc, mock := newServiceUnderTest(t, repo, rates, routes, warehouses, &fakeOutboxRepository{})
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.MaterializePeriod(context.Background(), f.companyID.String(), f.actorID.String(), materializeRequest(f))

	require.NoError(t, err)
	require.Len(t, resp.Unclassified, 1)
	assert.Equal(t, 3, resp.Unclassified[0].Count)
	assert.Equal(t, "North Hub", resp.Unclassified[0].WarehouseName)

	require.NotNil(t, created)
	assert.Len(t, created.Lines, 7, "unclassified routes must not be paid")
	assert.True(t, created.GrossAmount.Equal(dec("700.00")))
}

func TestMaterializeRejectsLockedPeriod(t *testing.T) {
	f := newFixture()
	f.period.Status = payrun.PeriodStatusLocked

	svc, _ := newServiceUnderTest(t, defaultRepo(f), &fakeRateService{}, &fakeRouteRepository{}, nil, &fakeOutboxRepository{})

	_, err := svc.MaterializePeriod(context.Background(), f.companyID.String(), f.actorID.String(), materializeRequest(f))

	assert.ErrorIs(t, err, payrunerrors.ErrPeriodLocked)
}

func TestMaterializeAbortsWhenPeriodLockedMidBatch(t *testing.T) {
	f := newFixture()
	driverA := uuid.New()
	driverB := uuid.New()

	lockedCopy := *f.period
	lockedCopy.Status = payrun.PeriodStatusLocked

	repo := defaultRepo(f)
	repo.findPeriodByIDFn = func(ctx context.Context, companyID, id string) (*payrun.PayPeriod, error) {
		return &lockedCopy, nil
	}
	repo.createRunFn = func(ctx context.Context, run *payrun.PayRun) error {
		t.Fatal("no run may be written once the period is locked")
		return nil
	}

	rates := &fakeRateService{
		resolveFn: func(ctx context.Context, companyID, driverID string, day time.Time) (*driverrate.DriverRate, error) {
			return perRouteRate(f.companyID, uuid.MustParse(driverID), "100.00"), nil
		},
	}
	routes := &fakeRouteRepository{
		findCompletedFn: func(ctx context.Context, companyID string, warehouseID, zoneID *string, from, to time.Time) ([]route.CompletedRoute, error) {
			return []route.CompletedRoute{
				f.completedRoute(driverA, nil),
				f.completedRoute(driverB, nil),
			}, nil
		},
	}

	svc, _ := newServiceUnderTest(t, repo, rates, routes, nil, &fakeOutboxRepository{})

	resp, err := svc.MaterializePeriod(context.Background(), f.companyID.String(), f.actorID.String(), materializeRequest(f))

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Computed)
	assert.Equal(t, 2, resp.Failed)
	for _, row := range resp.Drivers {
		assert.Equal(t, "failed", row.Status)
	}
}

func TestMaterializeCollectsPerDriverFailures(t *testing.T) {
	f := newFixture()
	driverA := uuid.New()
	driverB := uuid.New()

	repo := defaultRepo(f)
	repo.createRunFn = func(ctx context.Context, run *payrun.PayRun) error { return nil }

	rates := &fakeRateService{
		resolveFn: func(ctx context.Context, companyID, driverID string, day time.Time) (*driverrate.DriverRate, error) {
			if driverID == driverA.String() {
				return nil, driverrateerrors.ErrNoRateForDate
			}
			return perRouteRate(f.companyID, driverB, "100.00"), nil
		},
	}
	routes := &fakeRouteRepository{
		findCompletedFn: func(ctx context.Context, companyID string, warehouseID, zoneID *string, from, to time.Time) ([]route.CompletedRoute, error) {
			return []route.CompletedRoute{
				f.completedRoute(driverA, nil),
				f.completedRoute(driverB, nil),
			}, nil
		},
	}

	svc, mock := newServiceUnderTest(t, repo, rates, routes, nil, &fakeOutboxRepository{})
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.MaterializePeriod(context.Background(), f.companyID.String(), f.actorID.String(), materializeRequest(f))

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Computed)
	assert.Equal(t, 1, resp.Failed)

	for _, row := range resp.Drivers {
		if row.DriverID == driverA.String() {
			assert.Equal(t, "failed", row.Status)
			assert.Contains(t, row.Error, "no driver rate")
		}
	}
}

func TestLockPeriodTransitionsAndStagesEvent(t *testing.T) {
	f := newFixture()

	var saved *payrun.PayPeriod
	repo := defaultRepo(f)
	repo.savePeriodFn = func(ctx context.Context, period *payrun.PayPeriod) error {
		saved = period
		return nil
	}
	outbox := &fakeOutboxRepository{}

	svc, mock := newServiceUnderTest(t, repo, &fakeRateService{}, &fakeRouteRepository{}, nil, outbox)
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.LockPeriod(context.Background(), f.companyID.String(), f.actorID.String(), f.period.ID.String())

	require.NoError(t, err)
	assert.Equal(t, payrun.PeriodStatusLocked, resp.Status)
	require.NotNil(t, saved)
	assert.NotNil(t, saved.LockedAt)
	require.Len(t, outbox.created, 1)
	assert.Equal(t, "payroll.period.locked", outbox.created[0].EventType)
}

func TestLockPeriodRejectsSecondLock(t *testing.T) {
	f := newFixture()
	f.period.Status = payrun.PeriodStatusLocked

	svc, mock := newServiceUnderTest(t, defaultRepo(f), &fakeRateService{}, &fakeRouteRepository{}, nil, &fakeOutboxRepository{})
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.LockPeriod(context.Background(), f.companyID.String(), f.actorID.String(), f.period.ID.String())

	assert.ErrorIs(t, err, payrunerrors.ErrPeriodNotOpen)
}

func TestApproveRunRejectsSecondApproval(t *testing.T) {
	f := newFixture()
	run := &payrun.PayRun{
		ID:          uuid.New(),
		CompanyID:   f.companyID,
		PayPeriodID: f.period.ID,
		DriverID:    uuid.New(),
		Status:      payrun.RunStatusApproved,
	}

	repo := defaultRepo(f)
	repo.findRunByIDFn = func(ctx context.Context, companyID, id string) (*payrun.PayRun, error) {
		return run, nil
	}

	svc, mock := newServiceUnderTest(t, repo, &fakeRateService{}, &fakeRouteRepository{}, nil, &fakeOutboxRepository{})
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.ApproveRun(context.Background(), f.companyID.String(), f.actorID.String(), run.ID.String())

	assert.ErrorIs(t, err, payrunerrors.ErrRunAlreadyApproved)
}

func TestAddAdjustmentUpdatesNet(t *testing.T) {
	f := newFixture()
	run := &payrun.PayRun{
		ID:          uuid.New(),
		CompanyID:   f.companyID,
		PayPeriodID: f.period.ID,
		DriverID:    uuid.New(),
		GrossAmount: dec("100.00"),
		Adjustments: decimal.Zero,
		NetAmount:   dec("100.00"),
		Status:      payrun.RunStatusDraft,
	}

	var savedRun *payrun.PayRun
	repo := defaultRepo(f)
	repo.findRunByIDFn = func(ctx context.Context, companyID, id string) (*payrun.PayRun, error) {
		copied := *run
		return &copied, nil
	}
	repo.createAdjustmentFn = func(ctx context.Context, adj *payrun.Adjustment) error { return nil }
	repo.saveRunFn = func(ctx context.Context, r *payrun.PayRun) error {
		savedRun = r
		return nil
	}

	svc, mock := newServiceUnderTest(t, repo, &fakeRateService{}, &fakeRouteRepository{}, nil, &fakeOutboxRepository{})
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.AddAdjustment(context.Background(), f.companyID.String(), f.actorID.String(), run.ID.String(), payrun.AddAdjustmentRequest{
		Type:   "DEDUCTION",
		Reason: "uniform damage",
		Amount: dec("-15.00"),
	})

	require.NoError(t, err)
	require.NotNil(t, savedRun)
	assert.True(t, savedRun.NetAmount.Equal(dec("85.00")))
	assert.True(t, resp.Adjustments.Equal(dec("-15.00")))
	require.Len(t, resp.AdjustmentEntries, 1)
}

func TestAddAdjustmentRejectsApprovedRun(t *testing.T) {
	f := newFixture()
	run := &payrun.PayRun{
		ID:        uuid.New(),
		CompanyID: f.companyID,
		Status:    payrun.RunStatusApproved,
	}

	repo := defaultRepo(f)
	repo.findRunByIDFn = func(ctx context.Context, companyID, id string) (*payrun.PayRun, error) {
		return run, nil
	}

	svc, mock := newServiceUnderTest(t, repo, &fakeRateService{}, &fakeRouteRepository{}, nil, &fakeOutboxRepository{})
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.AddAdjustment(context.Background(), f.companyID.String(), f.actorID.String(), run.ID.String(), payrun.AddAdjustmentRequest{
		Type:   "BONUS",
		Reason: "holiday",
		Amount: dec("10.00"),
	})

	assert.ErrorIs(t, err, payrunerrors.ErrRunApprovedNoAdjustment)
}

func TestAddAdjustmentRejectsZeroAmount(t *testing.T) {
	f := newFixture()

	svc, _ := newServiceUnderTest(t, defaultRepo(f), &fakeRateService{}, &fakeRouteRepository{}, nil, &fakeOutboxRepository{})

	_, err := svc.AddAdjustment(context.Background(), f.companyID.String(), f.actorID.String(), uuid.NewString(), payrun.AddAdjustmentRequest{
		Type:   "BONUS",
		Reason: "noop",
		Amount: decimal.Zero,
	})

	assert.ErrorIs(t, err, payrunerrors.ErrZeroAdjustment)
}
