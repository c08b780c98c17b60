package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"

	"finhack/internal/cache"
	"finhack/internal/projection"
	"finhack/internal/testutil"
)

func newRedisCache(t *testing.T) cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewRedisWithClient(rdb, time.Minute)
}

func TestGetCashFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	assetSvc := NewAssetService(db, nil)
	txSvc := NewTransactionService(db, assetSvc, nil)
	svc := NewDashboardService(assetSvc, txSvc, nil)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	asOf := day(2017, time.February, 15)
	testutil.CreateTestAsset(t, db, user.ID, day(2016, time.February, 15))
	testutil.CreateTestTransaction(t, db, user.ID, projection.CategorySalary, "2000", day(2017, time.February, 5))
	testutil.CreateTestTransaction(t, db, user.ID, projection.CategoryExpense, "300", day(2017, time.February, 10))
	testutil.CreateTestTransaction(t, db, user.ID, projection.CategoryExpense, "80", day(2016, time.December, 24))
	testutil.CreateTestTransaction(t, db, user.ID, projection.CategoryInvestment, "999", day(2017, time.February, 11))
	testutil.CreateTestTransaction(t, db, other.ID, projection.CategorySalary, "7000", day(2017, time.February, 6))

	cf, err := svc.GetCashFlow(context.Background(), user.ID, asOf)
	testutil.AssertNoError(t, err)

	testutil.AssertDecimal(t, "gain", cf.InvestmentGain, "150")
	testutil.AssertDecimal(t, "income", cf.IncomeSum, "2000")
	testutil.AssertDecimal(t, "expense", cf.ExpenseSum, "300")
}

func TestGetCashFlow_emptyUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	assetSvc := NewAssetService(db, nil)
	svc := NewDashboardService(assetSvc, NewTransactionService(db, assetSvc, nil), nil)
	user := testutil.CreateTestUser(t, db)

	cf, err := svc.GetCashFlow(context.Background(), user.ID, day(2017, time.February, 15))
	testutil.AssertNoError(t, err)
	if !cf.InvestmentGain.IsZero() || !cf.IncomeSum.IsZero() || !cf.ExpenseSum.IsZero() {
		t.Errorf("expected all zeros, got %+v", cf)
	}
}

func TestGetProjectedNetWorth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	assetSvc := NewAssetService(db, nil)
	txSvc := NewTransactionService(db, assetSvc, nil)
	svc := NewDashboardService(assetSvc, txSvc, nil)
	user := testutil.CreateTestUser(t, db)

	asOf := day(2017, time.August, 31)
	testutil.CreateTestTransaction(t, db, user.ID, projection.CategorySalary, "3000", day(2017, time.March, 15))
	testutil.CreateTestTransaction(t, db, user.ID, projection.CategorySalary, "3000", day(2017, time.July, 15))
	testutil.CreateTestTransaction(t, db, user.ID, projection.CategoryExpense, "1200", day(2017, time.August, 1))
	testutil.CreateTestTransaction(t, db, user.ID, projection.CategorySalary, "9000", day(2017, time.February, 27))

	price := dec("1000")
	series, err := svc.GetProjectedNetWorth(context.Background(), user.ID, asOf, &price)
	testutil.AssertNoError(t, err)

	if len(series.PurchaseDone) != projection.HorizonYears {
		t.Fatalf("expected %d points, got %d", projection.HorizonYears, len(series.PurchaseDone))
	}
	if !series.PurchaseDone[0].Equal(dec("9600")) {
		t.Errorf("expected 9600 at year 0, got %s", series.PurchaseDone[0])
	}
	if !series.PurchaseNotDone[1].Equal(dec("20250")) {
		t.Errorf("expected 19200 + 1050 at year 1, got %s", series.PurchaseNotDone[1])
	}
	if !series.PurchaseNotDoneRecurring[0].Equal(dec("10600")) {
		t.Errorf("expected 9600 + 1000 at year 0, got %s", series.PurchaseNotDoneRecurring[0])
	}
}

func TestGetProjectedNetWorth_negativePrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	assetSvc := NewAssetService(db, nil)
	svc := NewDashboardService(assetSvc, NewTransactionService(db, assetSvc, nil), nil)
	user := testutil.CreateTestUser(t, db)

	price := dec("-5")
	_, err := svc.GetProjectedNetWorth(context.Background(), user.ID, day(2017, time.August, 31), &price)
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestGetProjectedNetWorth_badStoredRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	assetSvc := NewAssetService(db, nil)
	svc := NewDashboardService(assetSvc, NewTransactionService(db, assetSvc, nil), nil)
	user := testutil.CreateTestUser(t, db)

	asset := testutil.CreateTestAsset(t, db, user.ID, day(2016, time.February, 15))
	db.Exec("UPDATE assets SET initial_value = -1 WHERE id = ?", asset.ID)

	_, err := svc.GetProjectedNetWorth(context.Background(), user.ID, day(2017, time.August, 31), nil)
	testutil.AssertAppError(t, err, "INVALID_RECORDS")
}

func TestDashboard_cacheHitAndInvalidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	c := newRedisCache(t)
	assetSvc := NewAssetService(db, c)
	txSvc := NewTransactionService(db, assetSvc, c)
	svc := NewDashboardService(assetSvc, txSvc, c)
	user := testutil.CreateTestUser(t, db)
	ctx := context.Background()
	asOf := day(2017, time.March, 20)

	testutil.CreateTestTransaction(t, db, user.ID, projection.CategorySalary, "2000", day(2017, time.March, 10))

	first, err := svc.GetCashFlow(ctx, user.ID, asOf)
	testutil.AssertNoError(t, err)

	// Written behind the service's back, so nothing invalidates the cache.
	testutil.CreateTestTransaction(t, db, user.ID, projection.CategorySalary, "500", day(2017, time.March, 11))

	second, err := svc.GetCashFlow(ctx, user.ID, asOf)
	testutil.AssertNoError(t, err)
	if !second.IncomeSum.Equal(first.IncomeSum) {
		t.Errorf("expected cached income %s, got %s", first.IncomeSum, second.IncomeSum)
	}

	_, err = txSvc.CreateTransaction(user.ID, nil, projection.CategorySalary, decimal.NewFromInt(100), "", day(2017, time.March, 12))
	testutil.AssertNoError(t, err)

	third, err := svc.GetCashFlow(ctx, user.ID, asOf)
	testutil.AssertNoError(t, err)
	if !third.IncomeSum.Equal(dec("2600")) {
		t.Errorf("expected recomputed income 2600, got %s", third.IncomeSum)
	}
}

func TestDashboard_cacheKeysSeparatePrices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	c := newRedisCache(t)
	assetSvc := NewAssetService(db, c)
	svc := NewDashboardService(assetSvc, NewTransactionService(db, assetSvc, c), c)
	user := testutil.CreateTestUser(t, db)
	ctx := context.Background()
	asOf := day(2017, time.March, 20)

	none, err := svc.GetProjectedNetWorth(ctx, user.ID, asOf, nil)
	testutil.AssertNoError(t, err)

	price := dec("1000")
	withPrice, err := svc.GetProjectedNetWorth(ctx, user.ID, asOf, &price)
	testutil.AssertNoError(t, err)

	if !none.PurchaseNotDone[0].IsZero() {
		t.Errorf("expected zero without a price, got %s", none.PurchaseNotDone[0])
	}
	if !withPrice.PurchaseNotDone[0].Equal(price) {
		t.Errorf("expected %s with a price, got %s", price, withPrice.PurchaseNotDone[0])
	}
}

// writeDuringLoad invalidates the cache while the dashboard is reading assets,
// as a concurrent asset write would.
type writeDuringLoad struct {
	AssetServicer
	cache cache.Cache
}

func (w writeDuringLoad) ListAssets(ctx context.Context, userID string) ([]projection.Asset, error) {
	if err := w.cache.Invalidate(ctx, userID); err != nil {
		return nil, err
	}
	return w.AssetServicer.ListAssets(ctx, userID)
}

func TestDashboard_resultRacingAWriteIsNotCached(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	c := newRedisCache(t)
	assetSvc := NewAssetService(db, c)
	svc := NewDashboardService(writeDuringLoad{AssetServicer: assetSvc, cache: c}, NewTransactionService(db, assetSvc, c), c)
	user := testutil.CreateTestUser(t, db)
	ctx := context.Background()
	asOf := day(2017, time.March, 20)

	_, err := svc.GetCashFlow(ctx, user.ID, asOf)
	testutil.AssertNoError(t, err)

	var cached projection.CashFlow
	found, err := c.Get(ctx, user.ID, "cash-flow:"+asOf.Format(time.RFC3339), &cached)
	testutil.AssertNoError(t, err)
	if found {
		t.Error("expected a result computed across an invalidation to be dropped")
	}
}
