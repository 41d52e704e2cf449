package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"holdings_backend/internal/feature/quote/domain/entity"
)

// mockQuoteService はテスト用のQuoteServiceモック実装です。
type mockQuoteService struct {
	getQuoteFn func(ctx context.Context, symbol string) (*entity.Quote, error)
	calls      int
}

func (m *mockQuoteService) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	m.calls++
	if m.getQuoteFn != nil {
		return m.getQuoteFn(ctx, symbol)
	}
	return nil, nil
}

func sampleQuote() *entity.Quote {
	return &entity.Quote{
		Symbol:        "AAPL",
		Name:          "Apple Inc.",
		Price:         150.5,
		Change:        2.5,
		ChangePercent: 1.69,
		AssetType:     entity.AssetTypeStock,
		MarketState:   entity.MarketStateRegular,
	}
}

// TestNewCachingQuoteService_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingQuoteService_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 5 * time.Minute, "quotes"},
		{"negative ttl uses default", -time.Minute, "", 5 * time.Minute, "quotes"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewCachingQuoteService(nil, tt.ttl, &mockQuoteService{}, tt.namespace)

			if svc.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, svc.ttl)
			}
			if svc.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, svc.namespace)
			}
		})
	}
}

// TestCachingQuoteService_NilRedisBypassesCache はRedis未設定時に直接innerへ委譲することを検証します。
func TestCachingQuoteService_NilRedisBypassesCache(t *testing.T) {
	t.Parallel()

	inner := &mockQuoteService{
		getQuoteFn: func(ctx context.Context, symbol string) (*entity.Quote, error) {
			return sampleQuote(), nil
		},
	}
	svc := NewCachingQuoteService(nil, time.Minute, inner, "quotes")

	q, err := svc.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Symbol != "AAPL" || inner.calls != 1 {
		t.Errorf("expected direct delegation, got %+v (calls=%d)", q, inner.calls)
	}
}

// TestCachingQuoteService_CacheMissStoresResult はキャッシュミス時にinnerの結果が保存されることを検証します。
func TestCachingQuoteService_CacheMissStoresResult(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &mockQuoteService{
		getQuoteFn: func(ctx context.Context, symbol string) (*entity.Quote, error) {
			return sampleQuote(), nil
		},
	}
	svc := NewCachingQuoteService(rdb, time.Minute, inner, "quotes")

	expected, _ := json.Marshal(sampleQuote())
	mock.ExpectGet("quotes:AAPL").RedisNil()
	mock.ExpectSet("quotes:AAPL", expected, time.Minute).SetVal("OK")

	q, err := svc.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Price != 150.5 {
		t.Errorf("expected price 150.5, got %f", q.Price)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingQuoteService_CacheHitSkipsInner はキャッシュヒット時にinnerが呼ばれないことを検証します。
func TestCachingQuoteService_CacheHitSkipsInner(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &mockQuoteService{}
	svc := NewCachingQuoteService(rdb, time.Minute, inner, "quotes")

	cached, _ := json.Marshal(sampleQuote())
	mock.ExpectGet("quotes:AAPL").SetVal(string(cached))

	q, err := svc.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Name != "Apple Inc." {
		t.Errorf("expected cached quote, got %+v", q)
	}
	if inner.calls != 0 {
		t.Errorf("expected no inner calls on cache hit, got %d", inner.calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingQuoteService_CorruptedEntryIsDeleted は壊れたキャッシュを削除してinnerへフォールバックすることを検証します。
func TestCachingQuoteService_CorruptedEntryIsDeleted(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &mockQuoteService{
		getQuoteFn: func(ctx context.Context, symbol string) (*entity.Quote, error) {
			return sampleQuote(), nil
		},
	}
	svc := NewCachingQuoteService(rdb, time.Minute, inner, "quotes")

	expected, _ := json.Marshal(sampleQuote())
	mock.ExpectGet("quotes:AAPL").SetVal("{not json")
	mock.ExpectDel("quotes:AAPL").SetVal(1)
	mock.ExpectSet("quotes:AAPL", expected, time.Minute).SetVal("OK")

	q, err := svc.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Symbol != "AAPL" || inner.calls != 1 {
		t.Errorf("expected fallback to inner, got %+v (calls=%d)", q, inner.calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingQuoteService_InnerErrorNotCached はinnerの失敗がキャッシュされないことを検証します。
func TestCachingQuoteService_InnerErrorNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	innerErr := errors.New("provider down")
	inner := &mockQuoteService{
		getQuoteFn: func(ctx context.Context, symbol string) (*entity.Quote, error) {
			return nil, innerErr
		},
	}
	svc := NewCachingQuoteService(rdb, time.Minute, inner, "quotes")

	mock.ExpectGet("quotes:AAPL").RedisNil()

	_, err := svc.GetQuote(context.Background(), "AAPL")
	if !errors.Is(err, innerErr) {
		t.Errorf("expected inner error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingQuoteService_Invalidate はキャッシュの明示的な無効化を検証します。
func TestCachingQuoteService_Invalidate(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	svc := NewCachingQuoteService(rdb, time.Minute, &mockQuoteService{}, "quotes")

	mock.ExpectDel("quotes:AAPL").SetVal(1)
	svc.Invalidate(context.Background(), "AAPL")

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}
