package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"holdings_backend/internal/feature/history/domain/entity"
)

// uncapped は日足以上のインターバルに上限が無いことを表す番兵です。
const uncapped = "max"

// intervalMaxPeriods はインターバルごとにプロバイダが許可する最大遡及期間です。
// 分足は7〜730日で頭打ちになり、日足以上に上限はありません。
var intervalMaxPeriods = map[string]string{
	"1m":  "7d",
	"2m":  "60d",
	"5m":  "60d",
	"15m": "60d",
	"30m": "60d",
	"60m": "730d",
	"90m": "60d",
	"1h":  "730d",
	"1d":  uncapped,
	"5d":  uncapped,
	"1wk": uncapped,
	"1mo": uncapped,
	"3mo": uncapped,
}

// knownPeriodDays は既知の期間トークンの日数換算表です。
// "ytd" と "max" は数値に解決できないため含まれません。
var knownPeriodDays = map[string]int{
	"1d":  1,
	"5d":  5,
	"7d":  7,
	"60d": 60,
	"90d": 90,
	"1mo": 30,
	"3mo": 90,
	"6mo": 180,
	"1y":  365,
	"2y":  730,
	"5y":  1825,
	"10y": 3650,
}

// strictIntradayIntervals は数値比較に失敗したとき保守的な文字列規則を
// 適用する分足のインターバル集合です。
var strictIntradayIntervals = map[string]struct{}{
	"1m": {}, "2m": {}, "5m": {}, "15m": {}, "30m": {}, "90m": {},
}

// intradaySafePeriods は分足でも確実に許可される期間の小さな集合です。
var intradaySafePeriods = map[string]struct{}{
	"1d": {}, "5d": {}, "7d": {}, "60d": {},
}

// smaSeedLookbackDays は200期間SMAを表示初日から埋めるために
// 余分に取得する先行日数です。
const smaSeedLookbackDays = 200

// periodToDays は期間トークンを日数に解決します。固定の換算表を引いたうえで、
// "<n>d" / "<n>mo" / "<n>y" 形式も単位表（d=1, mo=30, y=365）で解決します。
// "ytd" や "max" のように数値化できないものは ok=false を返します。
func periodToDays(period string) (int, bool) {
	if days, ok := knownPeriodDays[period]; ok {
		return days, true
	}
	for _, u := range []struct {
		suffix string
		days   int
	}{{"mo", 30}, {"d", 1}, {"y", 365}} {
		if !strings.HasSuffix(period, u.suffix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(period, u.suffix))
		if err != nil || n <= 0 {
			return 0, false
		}
		return n * u.days, true
	}
	return 0, false
}

// Reconcile はリクエストされた期間とインターバルの組をプロバイダが許可する
// 組へ調整します。期間がインターバルの上限を超える場合は上限期間に
// 置き換え、調整内容を返します。
//
// 日数に解決できない期間（ytd / max など）については、分足インターバルに
// 限り既知の安全な期間以外を上限へ強制する保守的な文字列規則に
// フォールバックします。この調整は予見可能な上流拒否への緩和策であり、
// 成功の保証ではありません。
//
// 未知のインターバルに対してのみ ErrInvalidInterval で失敗します。
func Reconcile(period, interval string) (string, *entity.PeriodAdjustment, error) {
	maxPeriod, ok := intervalMaxPeriods[interval]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}
	if maxPeriod == uncapped {
		return period, nil, nil
	}

	requestedDays, reqOK := periodToDays(period)
	maxDays, maxOK := periodToDays(maxPeriod)

	if reqOK && maxOK {
		if requestedDays <= maxDays {
			return period, nil, nil
		}
		return maxPeriod, adjustment(period, maxPeriod, interval), nil
	}

	// 数値比較ができない場合の保守的な文字列規則
	if _, strict := strictIntradayIntervals[interval]; strict {
		if _, safe := intradaySafePeriods[period]; !safe {
			return maxPeriod, adjustment(period, maxPeriod, interval), nil
		}
	}
	return period, nil, nil
}

// ExtendForSMA は表示期間に200期間SMAのシード分の先行日数を加えた
// 取得用の期間を返します。日数に解決できない期間はそのまま返します。
// 呼び出し元へ報告される「リクエスト期間」は常に拡張前の値です。
func ExtendForSMA(period string) string {
	days, ok := periodToDays(period)
	if !ok {
		return period
	}
	return fmt.Sprintf("%dd", days+smaSeedLookbackDays)
}

func adjustment(requested, effective, interval string) *entity.PeriodAdjustment {
	return &entity.PeriodAdjustment{
		Requested: requested,
		Effective: effective,
		Reason: fmt.Sprintf("Adjusted period from %s to %s due to %s interval limitations",
			requested, effective, interval),
	}
}
