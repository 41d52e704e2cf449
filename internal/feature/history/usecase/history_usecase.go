package usecase

import (
	"context"
	"fmt"
	"strings"

	"holdings_backend/internal/feature/history/domain/entity"
	quoteentity "holdings_backend/internal/feature/quote/domain/entity"
)

const (
	// DefaultPeriod は履歴クエリのデフォルト期間です。
	DefaultPeriod = "1y"
	// DefaultInterval は履歴クエリのデフォルトのサンプリング間隔です。
	DefaultInterval = "1d"
)

// MarketRepository は履歴バーの取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	// FetchBars は指定された期間とインターバルの価格バーを古い順で返します。
	// プロバイダがインターバルに対して期間を明示的に拒否した場合は
	// ErrRangeTooNarrow を返します。
	FetchBars(ctx context.Context, symbol, period, interval string) ([]quoteentity.Bar, error)
}

// historyUsecase は履歴データ操作のユースケースを定義します。
type historyUsecase struct {
	market MarketRepository
}

// NewHistoryUsecase はhistoryUsecaseの新しいインスタンスを生成します。
func NewHistoryUsecase(market MarketRepository) *historyUsecase {
	return &historyUsecase{market: market}
}

// GetHistory は銘柄の正規化済み履歴系列を取得します。
//
// 期間とインターバルはまず Reconcile でプロバイダの許可する組へ調整され、
// 調整が起きた場合はその内容が結果に付与されます。withSMAが真のときは
// 200期間SMAを表示初日から埋めるため取得期間を先行分だけ拡張しますが、
// SMA計算後にシード分の行を切り落とすため、結果の期間・行数は常に
// 拡張前のリクエスト期間に対応します。
func (hu *historyUsecase) GetHistory(ctx context.Context, symbol, period, interval string, withSMA bool) (*entity.Series, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if period == "" {
		period = DefaultPeriod
	}
	if interval == "" {
		interval = DefaultInterval
	}

	requested := period
	fetchPeriod := period
	if withSMA {
		fetchPeriod = ExtendForSMA(period)
	}

	effective, adj, err := Reconcile(fetchPeriod, interval)
	if err != nil {
		return nil, err
	}
	if adj != nil {
		// 呼び出し元にはSMAシード拡張前の期間を報告する
		adj = adjustment(requested, adj.Effective, interval)
	}

	bars, err := hu.market.FetchBars(ctx, symbol, effective, interval)
	if err != nil {
		return nil, fmt.Errorf("fetch history %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	// 呼び出し元に見せる期間は拡張前のリクエスト期間。上限調整が
	// 起きた場合のみ調整後の期間になる。
	visiblePeriod := requested
	if adj != nil {
		visiblePeriod = adj.Effective
	}

	points := normalizePoints(bars, interval)

	series := &entity.Series{
		Symbol:     symbol,
		Period:     visiblePeriod,
		Interval:   interval,
		Adjustment: adj,
	}
	if withSMA {
		closes := make([]float64, len(bars))
		for i, b := range bars {
			closes[i] = b.Close
		}
		sma := ComputeSMA(closes)

		// SMAは拡張ウィンドウ全体で計算したうえで、シード分の行を
		// 系列ごと切り落としてリクエスト期間に揃える
		if seed := seedBarCount(bars, visiblePeriod); seed > 0 {
			points = points[seed:]
			for name, vals := range sma {
				sma[name] = vals[seed:]
			}
		}
		series.SMA = sma
	}
	series.Points = points
	return series, nil
}

// seedBarCount はリクエスト期間の開始日より前にあるSMAシード用バーの
// 件数を返します。期間を日数に解決できない場合（ytd / max など）は
// 拡張が行われていないため0を返します。
func seedBarCount(bars []quoteentity.Bar, period string) int {
	days, ok := periodToDays(period)
	if !ok || len(bars) == 0 {
		return 0
	}
	cutoff := bars[len(bars)-1].Time.UTC().AddDate(0, 0, -days)
	n := 0
	for n < len(bars) && !bars[n].Time.UTC().After(cutoff) {
		n++
	}
	return n
}

// normalizePoints は生のバー列を正規化済みの履歴行へ変換します。
// 日時はUTCへ正規化し、分足・時間足のインターバルでは時刻まで含めます。
// 2行目以降には直前の行に対する変化量と変化率を付与します
// （直前の終値が0の場合、変化率は0）。
func normalizePoints(bars []quoteentity.Bar, interval string) []entity.HistoricalPoint {
	layout := "2006-01-02"
	if isIntraday(interval) {
		layout = "2006-01-02 15:04:05"
	}

	points := make([]entity.HistoricalPoint, 0, len(bars))
	for i, b := range bars {
		p := entity.HistoricalPoint{
			Date:   b.Time.UTC().Format(layout),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
		if i > 0 {
			prev := bars[i-1].Close
			change := b.Close - prev
			pct := 0.0
			if prev != 0 {
				pct = change / prev * 100
			}
			p.Change = &change
			p.ChangePercent = &pct
		}
		points = append(points, p)
	}
	return points
}

// isIntraday は時刻情報を持つインターバルかどうかを判定します。
func isIntraday(interval string) bool {
	return strings.HasSuffix(interval, "m") || strings.HasSuffix(interval, "h")
}
