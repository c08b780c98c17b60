package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"finhack/internal/cache"
	apperrors "finhack/internal/errors"
	"finhack/internal/logger"
	"finhack/internal/projection"
	"finhack/internal/tracing"
)

// dashboardService feeds stored records into the projection engine.
type dashboardService struct {
	assets       AssetServicer
	transactions TransactionServicer
	cache        cache.Cache
	tracer       trace.Tracer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(assets AssetServicer, transactions TransactionServicer, c cache.Cache) DashboardServicer {
	if c == nil {
		c = cache.Noop{}
	}
	return &dashboardService{
		assets:       assets,
		transactions: transactions,
		cache:        c,
		tracer:       tracing.Tracer(),
	}
}

// GetCashFlow returns investment gain to date and the trailing month's
// income and expense.
func (s *dashboardService) GetCashFlow(ctx context.Context, userID string, asOf time.Time) (*projection.CashFlow, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.cash_flow", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("as_of", asOf.Format(time.DateOnly)),
	))
	defer span.End()

	key := "cash-flow:" + asOf.Format(time.RFC3339)
	var cached projection.CashFlow
	if s.cacheGet(ctx, userID, key, &cached) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return &cached, nil
	}
	gen, cacheable := s.cacheGeneration(ctx, userID)

	assets, txs, err := s.load(ctx, userID, projection.WindowStart(asOf, projection.CashFlowWindowMonths))
	if err != nil {
		return nil, s.fail(span, err)
	}

	_, computeSpan := s.tracer.Start(ctx, "projection.current_cash_flow")
	cf, err := projection.CurrentCashFlow(assets, txs, asOf)
	computeSpan.End()
	if err != nil {
		return nil, s.fail(span, mapProjectionError(err))
	}

	if cacheable {
		s.cacheSet(ctx, userID, key, gen, cf)
	}
	return &cf, nil
}

// GetProjectedNetWorth returns the thirty-year net-worth series for the
// three purchase scenarios.
func (s *dashboardService) GetProjectedNetWorth(ctx context.Context, userID string, asOf time.Time, purchasePrice *decimal.Decimal) (*projection.NetWorthSeries, error) {
	priceKey := "none"
	if purchasePrice != nil {
		priceKey = purchasePrice.String()
	}
	ctx, span := s.tracer.Start(ctx, "dashboard.projected_net_worth", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("as_of", asOf.Format(time.DateOnly)),
		attribute.String("purchase_price", priceKey),
	))
	defer span.End()

	key := fmt.Sprintf("net-worth:%s:%s", asOf.Format(time.RFC3339), priceKey)
	var cached projection.NetWorthSeries
	if s.cacheGet(ctx, userID, key, &cached) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return &cached, nil
	}
	gen, cacheable := s.cacheGeneration(ctx, userID)

	assets, txs, err := s.load(ctx, userID, projection.WindowStart(asOf, projection.ProjectionWindowMonths))
	if err != nil {
		return nil, s.fail(span, err)
	}

	_, computeSpan := s.tracer.Start(ctx, "projection.project_net_worth")
	series, err := projection.ProjectNetWorth(assets, txs, asOf, purchasePrice)
	computeSpan.End()
	if err != nil {
		return nil, s.fail(span, mapProjectionError(err))
	}

	if cacheable {
		s.cacheSet(ctx, userID, key, gen, series)
	}
	return &series, nil
}

// load fetches assets and the windowed Salary/Expense transactions in parallel.
func (s *dashboardService) load(ctx context.Context, userID string, from time.Time) ([]projection.Asset, []projection.Transaction, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.load")
	defer span.End()

	var (
		assets []projection.Asset
		txs    []projection.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = s.assets.ListAssets(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = s.transactions.ListTransactions(gctx, userID, from, projection.CategorySalary, projection.CategoryExpense)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("assets.count", len(assets)),
		attribute.Int("transactions.count", len(txs)),
	)
	return assets, txs, nil
}

func (s *dashboardService) cacheGet(ctx context.Context, userID, key string, dst any) bool {
	found, err := s.cache.Get(ctx, userID, key, dst)
	if err != nil {
		logger.Get().Warnw("dashboard cache read failed", "user_id", userID, "key", key, "error", err)
		return false
	}
	return found
}

// cacheGeneration reads the user's generation before the records are loaded.
// Without it the result is served but not cached.
func (s *dashboardService) cacheGeneration(ctx context.Context, userID string) (int64, bool) {
	gen, err := s.cache.Generation(ctx, userID)
	if err != nil {
		logger.Get().Warnw("dashboard cache generation read failed", "user_id", userID, "error", err)
		return 0, false
	}
	return gen, true
}

func (s *dashboardService) cacheSet(ctx context.Context, userID, key string, gen int64, value any) {
	if err := s.cache.Set(ctx, userID, key, gen, value); err != nil {
		logger.Get().Warnw("dashboard cache write failed", "user_id", userID, "key", key, "error", err)
	}
}

func (s *dashboardService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// mapProjectionError turns engine validation failures into AppErrors. Bad
// request parameters are the caller's fault; bad stored records are not.
func mapProjectionError(err error) error {
	var verr *projection.ValidationError
	if errors.As(err, &verr) {
		if verr.Kind == "input" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, verr.Error())
		}
		appErr := apperrors.Wrap(apperrors.ErrInvalidRecords, err)
		appErr.Message = verr.Error()
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
