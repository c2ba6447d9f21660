package payrun

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fleetpay/internal/driverrate"
	"fleetpay/internal/events"
	"fleetpay/internal/messaging/kafka"
	"fleetpay/internal/payrollconfig"
	payrunerrors "fleetpay/internal/payrun/errors"
	"fleetpay/internal/route"
	"fleetpay/internal/shared/contextutil"
	"fleetpay/internal/warehouse"
)

const (
	driverStatusComputed = "computed"
	driverStatusSkipped  = "skipped"
	driverStatusFailed   = "failed"
)

//go:generate mockgen -source=payrun_service.go -destination=mock/payrun_service_mock.go -package=mock
type Service interface {
	// MaterializePeriod computes pay runs for every driver with completed
	// routes in the range. Per-driver failures are reported, not fatal;
	// existing runs are skipped unless recompute_all is set.
	MaterializePeriod(ctx context.Context, companyID, actorID string, req MaterializePeriodRequest) (MaterializePeriodResponse, error)

	GetPeriod(ctx context.Context, companyID, periodID string) (PayPeriodResponse, error)
	ListPeriods(ctx context.Context, companyID string) ([]PayPeriodResponse, error)
	LockPeriod(ctx context.Context, companyID, actorID, periodID string) (PayPeriodResponse, error)

	GetRun(ctx context.Context, companyID, runID string) (PayRunResponse, error)
	ListRunsByPeriod(ctx context.Context, companyID, periodID string) ([]PayRunResponse, error)
	ApproveRun(ctx context.Context, companyID, actorID, runID string) (PayRunResponse, error)
	AddAdjustment(ctx context.Context, companyID, actorID, runID string, req AddAdjustmentRequest) (PayRunResponse, error)

	ExportRunCSV(ctx context.Context, companyID, runID string) ([]byte, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	rates      driverrate.Service
	routes     route.Repository
	warehouses warehouse.Repository
	configs    payrollconfig.Service
	outbox     kafka.OutboxRepository
}

func NewService(
	db *gorm.DB,
	repo Repository,
	rates driverrate.Service,
	routes route.Repository,
	warehouses warehouse.Repository,
	configs payrollconfig.Service,
	outbox kafka.OutboxRepository,
) Service {
	return &service{
		db:         db,
		repo:       repo,
		rates:      rates,
		routes:     routes,
		warehouses: warehouses,
		configs:    configs,
		outbox:     outbox,
	}
}

func (s *service) MaterializePeriod(
	ctx context.Context,
	companyID, actorID string,
	req MaterializePeriodRequest,
) (MaterializePeriodResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return MaterializePeriodResponse{}, payrunerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return MaterializePeriodResponse{}, payrunerrors.ErrInvalidActorID
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return MaterializePeriodResponse{}, err
	}

	var warehouseUUID *uuid.UUID
	if req.WarehouseID != nil && *req.WarehouseID != "" {
		parsed, err := uuid.Parse(*req.WarehouseID)
		if err != nil {
			return MaterializePeriodResponse{}, payrunerrors.ErrInvalidWarehouseID
		}
		warehouseUUID = &parsed
	}

	period, err := s.getOrCreatePeriod(ctx, companyUUID, actorUUID, warehouseUUID, start, end, req.Notes)
	if err != nil {
		return MaterializePeriodResponse{}, err
	}
	if period.Status == PeriodStatusLocked {
		return MaterializePeriodResponse{}, payrunerrors.ErrPeriodLocked
	}

	routes, err := s.routes.FindCompletedInRange(ctx, companyID, req.WarehouseID, req.ZoneID, start, end)
	if err != nil {
		return MaterializePeriodResponse{}, err
	}

	zoneRequired, err := s.warehouses.ZoneRequiredFlags(ctx, companyID)
	if err != nil {
		return MaterializePeriodResponse{}, err
	}

	eligible, unclassified := partitionByZone(routes, zoneRequired)

	unclassifiedGroups, err := s.groupUnclassified(ctx, companyID, unclassified)
	if err != nil {
		return MaterializePeriodResponse{}, err
	}

	byDriver := groupByDriver(eligible)
	driverIDs := sortedDriverIDs(byDriver)

	existingRuns, err := s.repo.FindRunsByPeriod(ctx, companyID, period.ID.String())
	if err != nil {
		return MaterializePeriodResponse{}, err
	}
	runByDriver := make(map[uuid.UUID]PayRun, len(existingRuns))
	for _, run := range existingRuns {
		runByDriver[run.DriverID] = run
	}

	resp := MaterializePeriodResponse{
		Period:       mapPeriodToResponse(*period),
		Unclassified: unclassifiedGroups,
	}
	configCache := payrollconfig.NewConfigCache(s.configs)

	for i, driverID := range driverIDs {
		existing, hasRun := runByDriver[driverID]
		// An approved run is terminal; recompute_all only rewrites drafts.
		if hasRun && (!req.RecomputeAll || existing.Status == RunStatusApproved) {
			resp.Drivers = append(resp.Drivers, summarizeRun(existing, driverStatusSkipped, ""))
			resp.Skipped++
			continue
		}

		// Re-check the period before every write: a concurrent lock must
		// stop the batch, not race it.
		fresh, err := s.repo.FindPeriodByID(ctx, companyID, period.ID.String())
		if err != nil {
			return resp, err
		}
		if fresh.Status == PeriodStatusLocked {
			for _, remaining := range driverIDs[i:] {
				resp.Drivers = append(resp.Drivers, DriverRunSummary{
					DriverID: remaining.String(),
					Status:   driverStatusFailed,
					Error:    payrunerrors.ErrPeriodLocked.Message,
				})
				resp.Failed++
			}
			break
		}

		summary := s.computeDriver(ctx, configCache, computeDriverInput{
			companyID:   companyUUID,
			actorID:     actorUUID,
			period:      period,
			driverID:    driverID,
			routes:      byDriver[driverID],
			existing:    existing,
			hasExisting: hasRun,
		})
		resp.Drivers = append(resp.Drivers, summary)
		switch summary.Status {
		case driverStatusComputed:
			resp.Computed++
		case driverStatusSkipped:
			resp.Skipped++
		default:
			resp.Failed++
		}
	}

	if err := s.stagePeriodMaterialized(ctx, period, actorID, resp); err != nil {
		return resp, err
	}

	contextutil.GetLogger(ctx, zap.L()).Info("pay period materialized",
		zap.String("pay_period_id", period.ID.String()),
		zap.Int("computed", resp.Computed),
		zap.Int("skipped", resp.Skipped),
		zap.Int("failed", resp.Failed),
		zap.Int("unclassified_groups", len(resp.Unclassified)),
	)

	return resp, nil
}

type computeDriverInput struct {
	companyID   uuid.UUID
	actorID     uuid.UUID
	period      *PayPeriod
	driverID    uuid.UUID
	routes      []route.CompletedRoute
	existing    PayRun
	hasExisting bool
}

// computeDriver resolves the driver's rate, evaluates the pay lines, and
// upserts the run. Errors become a failed summary row so the batch keeps
// going.
func (s *service) computeDriver(
	ctx context.Context,
	configCache *payrollconfig.ConfigCache,
	in computeDriverInput,
) DriverRunSummary {
	rate, err := s.rates.Resolve(ctx, in.companyID.String(), in.driverID.String(), in.period.StartDate)
	if err != nil {
		return DriverRunSummary{
			DriverID: in.driverID.String(),
			Status:   driverStatusFailed,
			Error:    err.Error(),
		}
	}

	// Routes may span warehouses when the period is company-wide; each
	// warehouse group is evaluated against its own payroll config.
	var (
		lines []LineDraft
		gross decimal.Decimal
	)
	for _, group := range groupByWarehouse(in.routes) {
		cfg, err := configCache.Get(ctx, in.companyID.String(), group.warehouseID.String())
		if err != nil {
			return DriverRunSummary{
				DriverID: in.driverID.String(),
				Status:   driverStatusFailed,
				Error:    err.Error(),
			}
		}
		result := ComputePayLines(ComputeInput{Rate: *rate, Routes: group.routes, Config: cfg})
		lines = append(lines, result.Lines...)
		gross = gross.Add(result.Gross)
	}

	run, err := s.upsertRun(ctx, in, gross, lines)
	if err != nil {
		if isUniqueViolation(err) {
			// Another worker materialized this driver first; the stored
			// run is authoritative.
			return DriverRunSummary{DriverID: in.driverID.String(), Status: driverStatusSkipped}
		}
		return DriverRunSummary{
			DriverID: in.driverID.String(),
			Status:   driverStatusFailed,
			Error:    err.Error(),
		}
	}

	return summarizeRun(*run, driverStatusComputed, "")
}

func (s *service) upsertRun(
	ctx context.Context,
	in computeDriverInput,
	gross decimal.Decimal,
	drafts []LineDraft,
) (*PayRun, error) {
	now := time.Now().UTC()

	var run PayRun
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if in.hasExisting {
			run = in.existing
			run.GrossAmount = gross
			run.Adjustments = sumAdjustments(run.AdjustmentEntries)
			run.NetAmount = gross.Add(run.Adjustments)
			run.CalculatedAt = now
			run.CalculatedBy = in.actorID

			if err := qtx.SaveRun(ctx, &run); err != nil {
				return err
			}
			return qtx.ReplaceLines(ctx, run.ID, buildLines(run.ID, drafts))
		}

		run = PayRun{
			ID:           uuid.New(),
			CompanyID:    in.companyID,
			PayPeriodID:  in.period.ID,
			DriverID:     in.driverID,
			GrossAmount:  gross,
			Adjustments:  decimal.Zero,
			NetAmount:    gross,
			Status:       RunStatusDraft,
			CalculatedAt: now,
			CalculatedBy: in.actorID,
			Lines:        buildLines(uuid.Nil, drafts),
		}
		for i := range run.Lines {
			run.Lines[i].PayRunID = run.ID
		}
		return qtx.CreateRun(ctx, &run)
	})
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *service) getOrCreatePeriod(
	ctx context.Context,
	companyID, actorID uuid.UUID,
	warehouseID *uuid.UUID,
	start, end time.Time,
	notes *string,
) (*PayPeriod, error) {
	var warehouseStr *string
	if warehouseID != nil {
		v := warehouseID.String()
		warehouseStr = &v
	}

	period, err := s.repo.FindPeriodByScope(ctx, companyID.String(), warehouseStr, start, end)
	if err == nil {
		return period, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	candidate := &PayPeriod{
		ID:          uuid.New(),
		CompanyID:   companyID,
		WarehouseID: warehouseID,
		StartDate:   start,
		EndDate:     end,
		Status:      PeriodStatusOpen,
		Notes:       notes,
		CreatedBy:   actorID,
	}
	err = s.repo.CreatePeriod(ctx, candidate)
	if err == nil {
		return candidate, nil
	}
	if isUniqueViolation(err) {
		// Lost the insert race; the winner's row is the period.
		return s.repo.FindPeriodByScope(ctx, companyID.String(), warehouseStr, start, end)
	}
	return nil, err
}

func (s *service) GetPeriod(ctx context.Context, companyID, periodID string) (PayPeriodResponse, error) {
	period, err := s.findPeriod(ctx, companyID, periodID)
	if err != nil {
		return PayPeriodResponse{}, err
	}
	return mapPeriodToResponse(*period), nil
}

func (s *service) ListPeriods(ctx context.Context, companyID string) ([]PayPeriodResponse, error) {
	periods, err := s.repo.ListPeriods(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]PayPeriodResponse, len(periods))
	for i, period := range periods {
		resp[i] = mapPeriodToResponse(period)
	}
	return resp, nil
}

func (s *service) LockPeriod(ctx context.Context, companyID, actorID, periodID string) (PayPeriodResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayPeriodResponse{}, payrunerrors.ErrInvalidActorID
	}

	var locked PayPeriod
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		period, err := qtx.FindPeriodByID(ctx, companyID, periodID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return payrunerrors.ErrPeriodNotFound
			}
			return err
		}
		if period.Status != PeriodStatusOpen {
			return payrunerrors.ErrPeriodNotOpen
		}

		now := time.Now().UTC()
		period.Status = PeriodStatusLocked
		period.LockedAt = &now
		period.LockedBy = &actorUUID

		if err := qtx.SavePeriod(ctx, period); err != nil {
			return err
		}

		payload, err := json.Marshal(events.PayrollPeriodLockedEvent{
			EventType:   "payroll.period.locked",
			PayPeriodID: period.ID.String(),
			CompanyID:   period.CompanyID.String(),
			LockedBy:    actorID,
			OccurredAt:  now,
		})
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "pay_period",
			AggregateID:   period.ID.String(),
			EventType:     "payroll.period.locked",
			Topic:         events.PayrollPeriodLockedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return err
		}

		locked = *period
		return nil
	})
	if err != nil {
		return PayPeriodResponse{}, err
	}

	contextutil.GetLogger(ctx, zap.L()).Info("pay period locked",
		zap.String("pay_period_id", periodID),
		zap.String("locked_by", actorID),
	)

	return mapPeriodToResponse(locked), nil
}

func (s *service) GetRun(ctx context.Context, companyID, runID string) (PayRunResponse, error) {
	run, err := s.findRun(ctx, companyID, runID)
	if err != nil {
		return PayRunResponse{}, err
	}
	return mapRunToResponse(*run), nil
}

func (s *service) ListRunsByPeriod(ctx context.Context, companyID, periodID string) ([]PayRunResponse, error) {
	if _, err := uuid.Parse(periodID); err != nil {
		return nil, payrunerrors.ErrInvalidPeriodID
	}
	if _, err := s.findPeriod(ctx, companyID, periodID); err != nil {
		return nil, err
	}
	runs, err := s.repo.FindRunsByPeriod(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}
	return mapRunsToListResponse(runs), nil
}

func (s *service) ApproveRun(ctx context.Context, companyID, actorID, runID string) (PayRunResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayRunResponse{}, payrunerrors.ErrInvalidActorID
	}

	var approved PayRun
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		run, err := qtx.FindRunByIDAndCompany(ctx, companyID, runID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return payrunerrors.ErrRunNotFound
			}
			return err
		}
		if run.Status == RunStatusApproved {
			return payrunerrors.ErrRunAlreadyApproved
		}

		now := time.Now().UTC()
		run.Status = RunStatusApproved
		run.ApprovedAt = &now
		run.ApprovedBy = &actorUUID

		if err := qtx.SaveRun(ctx, run); err != nil {
			return err
		}

		payload, err := json.Marshal(events.PayrollRunApprovedEvent{
			EventType:   "payroll.run.approved",
			PayRunID:    run.ID.String(),
			PayPeriodID: run.PayPeriodID.String(),
			CompanyID:   run.CompanyID.String(),
			DriverID:    run.DriverID.String(),
			NetAmount:   run.NetAmount.StringFixed(2),
			ApprovedBy:  actorID,
			OccurredAt:  now,
		})
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "pay_run",
			AggregateID:   run.ID.String(),
			EventType:     "payroll.run.approved",
			Topic:         events.PayrollRunApprovedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return err
		}

		approved = *run
		return nil
	})
	if err != nil {
		return PayRunResponse{}, err
	}

	contextutil.GetLogger(ctx, zap.L()).Info("pay run approved",
		zap.String("pay_run_id", runID),
		zap.String("approved_by", actorID),
	)

	return mapRunToResponse(approved), nil
}

func (s *service) AddAdjustment(
	ctx context.Context,
	companyID, actorID, runID string,
	req AddAdjustmentRequest,
) (PayRunResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayRunResponse{}, payrunerrors.ErrInvalidActorID
	}
	if req.Amount.IsZero() {
		return PayRunResponse{}, payrunerrors.ErrZeroAdjustment
	}

	var updated PayRun
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		run, err := qtx.FindRunByIDAndCompany(ctx, companyID, runID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return payrunerrors.ErrRunNotFound
			}
			return err
		}
		if run.Status == RunStatusApproved {
			return payrunerrors.ErrRunApprovedNoAdjustment
		}

		adj := Adjustment{
			ID:        uuid.New(),
			PayRunID:  run.ID,
			Type:      req.Type,
			Reason:    req.Reason,
			Amount:    req.Amount,
			CreatedBy: actorUUID,
		}
		if err := qtx.CreateAdjustment(ctx, &adj); err != nil {
			return err
		}

		run.Adjustments = run.Adjustments.Add(req.Amount)
		run.NetAmount = run.GrossAmount.Add(run.Adjustments)
		if err := qtx.SaveRun(ctx, run); err != nil {
			return err
		}

		run.AdjustmentEntries = append(run.AdjustmentEntries, adj)
		updated = *run
		return nil
	})
	if err != nil {
		return PayRunResponse{}, err
	}

	return mapRunToResponse(updated), nil
}

func (s *service) findPeriod(ctx context.Context, companyID, periodID string) (*PayPeriod, error) {
	period, err := s.repo.FindPeriodByID(ctx, companyID, periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrunerrors.ErrPeriodNotFound
		}
		return nil, err
	}
	return period, nil
}

func (s *service) findRun(ctx context.Context, companyID, runID string) (*PayRun, error) {
	run, err := s.repo.FindRunByIDAndCompany(ctx, companyID, runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrunerrors.ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

func (s *service) stagePeriodMaterialized(
	ctx context.Context,
	period *PayPeriod,
	actorID string,
	resp MaterializePeriodResponse,
) error {
	now := time.Now().UTC()
	payload, err := json.Marshal(events.PayrollPeriodMaterializedEvent{
		EventType:   "payroll.period.materialized",
		PayPeriodID: period.ID.String(),
		CompanyID:   period.CompanyID.String(),
		Computed:    resp.Computed,
		Skipped:     resp.Skipped,
		Failed:      resp.Failed,
		RequestedBy: actorID,
		OccurredAt:  now,
	})
	if err != nil {
		return err
	}
	return s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "pay_period",
		AggregateID:   period.ID.String(),
		EventType:     "payroll.period.materialized",
		Topic:         events.PayrollPeriodMaterializedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) groupUnclassified(
	ctx context.Context,
	companyID string,
	routes []route.CompletedRoute,
) ([]UnclassifiedRouteGroup, error) {
	if len(routes) == 0 {
		return nil, nil
	}

	type key struct {
		warehouseID uuid.UUID
		day         string
	}
	counts := make(map[key]int)
	warehouseIDs := make(map[uuid.UUID]struct{})
	for _, rt := range routes {
		counts[key{rt.WarehouseID, rt.RouteDate.Format("2006-01-02")}]++
		warehouseIDs[rt.WarehouseID] = struct{}{}
	}

	ids := make([]uuid.UUID, 0, len(warehouseIDs))
	for id := range warehouseIDs {
		ids = append(ids, id)
	}
	names, err := s.warehouses.FindNamesByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}

	groups := make([]UnclassifiedRouteGroup, 0, len(counts))
	for k, count := range counts {
		groups = append(groups, UnclassifiedRouteGroup{
			WarehouseID:   k.warehouseID.String(),
			WarehouseName: names[k.warehouseID],
			RouteDate:     k.day,
			Count:         count,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].WarehouseID != groups[j].WarehouseID {
			return groups[i].WarehouseID < groups[j].WarehouseID
		}
		return groups[i].RouteDate < groups[j].RouteDate
	})
	return groups, nil
}

// partitionByZone drops routes whose warehouse demands zone classification
// but carry none. Those routes are reported, never silently paid.
func partitionByZone(
	routes []route.CompletedRoute,
	zoneRequired map[uuid.UUID]bool,
) (eligible, unclassified []route.CompletedRoute) {
	for _, rt := range routes {
		if zoneRequired[rt.WarehouseID] && rt.ZoneID == nil {
			unclassified = append(unclassified, rt)
			continue
		}
		eligible = append(eligible, rt)
	}
	return eligible, unclassified
}

func groupByDriver(routes []route.CompletedRoute) map[uuid.UUID][]route.CompletedRoute {
	byDriver := make(map[uuid.UUID][]route.CompletedRoute)
	for _, rt := range routes {
		byDriver[rt.DriverID] = append(byDriver[rt.DriverID], rt)
	}
	return byDriver
}

func sortedDriverIDs(byDriver map[uuid.UUID][]route.CompletedRoute) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(byDriver))
	for id := range byDriver {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

type warehouseGroup struct {
	warehouseID uuid.UUID
	routes      []route.CompletedRoute
}

func groupByWarehouse(routes []route.CompletedRoute) []warehouseGroup {
	byWarehouse := make(map[uuid.UUID][]route.CompletedRoute)
	for _, rt := range routes {
		byWarehouse[rt.WarehouseID] = append(byWarehouse[rt.WarehouseID], rt)
	}

	groups := make([]warehouseGroup, 0, len(byWarehouse))
	for id, rts := range byWarehouse {
		groups = append(groups, warehouseGroup{warehouseID: id, routes: rts})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].warehouseID.String() < groups[j].warehouseID.String()
	})
	return groups
}

func buildLines(runID uuid.UUID, drafts []LineDraft) []PayRunLine {
	lines := make([]PayRunLine, len(drafts))
	for i, d := range drafts {
		lines[i] = PayRunLine{
			ID:          uuid.New(),
			PayRunID:    runID,
			SourceType:  d.SourceType,
			SourceID:    d.SourceID,
			Description: d.Description,
			Qty:         d.Qty,
			Rate:        d.Rate,
			Amount:      d.Amount,
			RouteDate:   d.RouteDate,
			ZoneID:      d.ZoneID,
		}
	}
	return lines
}

func sumAdjustments(entries []Adjustment) decimal.Decimal {
	total := decimal.Zero
	for _, adj := range entries {
		total = total.Add(adj.Amount)
	}
	return total
}

func summarizeRun(run PayRun, status, errMsg string) DriverRunSummary {
	return DriverRunSummary{
		DriverID:    run.DriverID.String(),
		Status:      status,
		GrossAmount: run.GrossAmount,
		Adjustments: run.Adjustments,
		NetAmount:   run.NetAmount,
		Error:       errMsg,
	}
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, payrunerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, payrunerrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, payrunerrors.ErrInvalidDateRange
	}
	return start, end, nil
}
