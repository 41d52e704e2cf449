package usecase

import (
	"fmt"

	"holdings_backend/internal/feature/history/domain/entity"
)

// smaWindows は算出対象の移動平均ウィンドウ幅の固定セットです。
var smaWindows = []int{20, 50, 100, 150, 200}

// ComputeSMA は終値系列に対する単純移動平均を固定ウィンドウ幅ごとに計算します。
// 戻り値の各系列は入力と同じ長さで、ウィンドウが埋まらない先頭部分、
// およびデータ不足のウィンドウ全体はnilになります。決定的で副作用はなく、
// 空入力に対しては各ウィンドウとも空の系列を返します。
func ComputeSMA(closes []float64) entity.SMASeries {
	out := make(entity.SMASeries, len(smaWindows))
	for _, w := range smaWindows {
		out[fmt.Sprintf("sma%d", w)] = slidingMean(closes, w)
	}
	return out
}

// slidingMean はウィンドウ幅wの移動平均系列を返します。
// 累積和を持ち回ることで系列全体をO(n)で計算します。
func slidingMean(closes []float64, w int) []*float64 {
	series := make([]*float64, len(closes))
	if len(closes) < w {
		return series
	}

	var sum float64
	for i, c := range closes {
		sum += c
		if i >= w {
			sum -= closes[i-w]
		}
		if i >= w-1 {
			mean := sum / float64(w)
			series[i] = &mean
		}
	}
	return series
}
