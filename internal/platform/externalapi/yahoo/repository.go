package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	historyuc "holdings_backend/internal/feature/history/usecase"
	"holdings_backend/internal/feature/quote/domain/entity"
	quoteuc "holdings_backend/internal/feature/quote/usecase"
	"holdings_backend/internal/platform/externalapi/yahoo/dto"
)

// YahooMarket はYahoo Finance公開APIからマーケットデータを取得する
// MarketRepository実装です。quoteとhistory両フィーチャーのプロバイダを兼ねます。
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

// YahooMarketが各コンシューマーインターフェースを実装していることをコンパイル時に検証します。
var (
	_ quoteuc.MarketRepository   = (*YahooMarket)(nil)
	_ historyuc.MarketRepository = (*YahooMarket)(nil)
)

// NewYahooMarket は指定された設定とHTTPクライアントでYahooMarketの新しいインスタンスを生成します。
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg, client: client}
}

// FetchQuoteMetadata はquoteSummaryエンドポイントから銘柄の記述的メタデータを取得します。
func (y *YahooMarket) FetchQuoteMetadata(ctx context.Context, symbol string) (*entity.QuoteMetadata, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price,financialData",
		y.cfg.BaseURL, url.PathEscape(symbol))

	var body dto.QuoteSummaryResponse
	if err := y.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo quoteSummary: %s", body.QuoteSummary.Error.Description)
	}
	if len(body.QuoteSummary.Result) == 0 || body.QuoteSummary.Result[0].Price == nil {
		return nil, fmt.Errorf("yahoo quoteSummary: no price data for %s", symbol)
	}

	price := body.QuoteSummary.Result[0].Price
	meta := &entity.QuoteMetadata{
		ShortName:          price.ShortName,
		LongName:           price.LongName,
		QuoteType:          price.QuoteType,
		MarketState:        price.MarketState,
		RegularMarketPrice: price.RegularMarketPrice.Raw,
		PreviousClose:      price.RegularMarketPreviousClose.Raw,
		PreMarketPrice:     price.PreMarketPrice.Raw,
		MarketCap:          price.MarketCap.Raw,
		Volume:             price.RegularMarketVolume.Raw,
	}
	if fin := body.QuoteSummary.Result[0].FinancialData; fin != nil {
		meta.CurrentPrice = fin.CurrentPrice.Raw
	}
	return meta, nil
}

// FetchRecentBars は直近lookbackDays日分の日足バーを古い順で返します。
func (y *YahooMarket) FetchRecentBars(ctx context.Context, symbol string, lookbackDays int) ([]entity.Bar, error) {
	return y.fetchChart(ctx, symbol, fmt.Sprintf("%dd", lookbackDays), "1d", false)
}

// FetchLatestPrepostBar は時間外取引を含む当日の直近分足バーを返します。
// バーが1本もない場合はnilを返します。
func (y *YahooMarket) FetchLatestPrepostBar(ctx context.Context, symbol string) (*entity.Bar, error) {
	bars, err := y.fetchChart(ctx, symbol, "1d", "1m", true)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, nil
	}
	last := bars[len(bars)-1]
	return &last, nil
}

// FetchBars は指定された期間とインターバルの価格バーを古い順で返します。
// プロバイダが期間をインターバルの制限で拒否した場合はErrRangeTooNarrowを返します。
func (y *YahooMarket) FetchBars(ctx context.Context, symbol, period, interval string) ([]entity.Bar, error) {
	return y.fetchChart(ctx, symbol, period, interval, false)
}

// FetchNews はsearchエンドポイントから銘柄のニュース項目を返します。
func (y *YahooMarket) FetchNews(ctx context.Context, symbol string) ([]entity.NewsItem, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s&newsCount=10", y.cfg.BaseURL, url.QueryEscape(symbol))

	var body dto.SearchResponse
	if err := y.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}

	items := make([]entity.NewsItem, 0, len(body.News))
	for _, n := range body.News {
		published := ""
		if n.ProviderPublishTime > 0 {
			published = time.Unix(n.ProviderPublishTime, 0).UTC().Format(time.RFC3339)
		}
		items = append(items, entity.NewsItem{
			Title:     n.Title,
			Link:      n.Link,
			Source:    n.Publisher,
			Published: published,
		})
	}
	return items, nil
}

// fetchChart はchartエンドポイントを呼び出し、nullバーを除いた
// 昇順のバー列を返します。
func (y *YahooMarket) fetchChart(ctx context.Context, symbol, rng, interval string, includePrepost bool) ([]entity.Bar, error) {
	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", interval)
	if includePrepost {
		q.Set("includePrePost", "true")
	}
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	var body dto.ChartResponse
	if err := y.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if apiErr := body.Chart.Error; apiErr != nil {
		if isRangeRejection(apiErr.Description) {
			return nil, fmt.Errorf("%w: %s/%s", historyuc.ErrRangeTooNarrow, rng, interval)
		}
		return nil, fmt.Errorf("yahoo chart: %s", apiErr.Description)
	}
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := body.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]entity.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o := deref(at(quote.Open, i))
		h := deref(at(quote.High, i))
		l := deref(at(quote.Low, i))
		c := deref(at(quote.Close, i))
		if o == 0 && h == 0 && l == 0 && c == 0 {
			// 休場日などのnullバーは飛ばす
			continue
		}
		var vol int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			vol = *quote.Volume[i]
		}
		bars = append(bars, entity.Bar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: vol,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// getJSON はGETリクエストを実行してJSONレスポンスをデコードします。
// HTTP 404は「データなし」としてゼロ値のままにします。
func (y *YahooMarket) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	// Yahooはデフォルトのgo-http-client UAを拒否する
	req.Header.Set("User-Agent", "Mozilla/5.0")

	res, err := y.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	// 404でもボディにエラー詳細が入るためデコードを試みる
	if res.StatusCode >= 400 && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("yahoo http %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// isRangeRejection はchart APIのエラーが期間とインターバルの組み合わせの
// 拒否かどうかを判定します。
func isRangeRejection(description string) bool {
	return strings.Contains(description, "The requested range must be within") ||
		strings.Contains(description, "data not available for startTime")
}

func at(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
