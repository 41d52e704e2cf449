// Package handler はhistoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"holdings_backend/internal/feature/history/domain/entity"
	"holdings_backend/internal/feature/history/transport/http/dto"
	"holdings_backend/internal/feature/history/usecase"
)

// HistoryUsecase は時系列取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type HistoryUsecase interface {
	GetHistory(ctx context.Context, symbol, period, interval string, withSMA bool) (*entity.Series, error)
}

// HistoryHandler は時系列のHTTPリクエストを処理します。
type HistoryHandler struct {
	uc HistoryUsecase
}

// NewHistoryHandler は指定されたusecaseでHistoryHandlerの新しいインスタンスを生成します。
func NewHistoryHandler(uc HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// GetHistoryHandler は銘柄の時系列をJSONで返します。
// 期間が足切りされた場合は調整メタデータも返します。
//
// エンドポイント例:
// GET /api/history/AAPL?period=1y&interval=1d&calculate_sma=true
func (h *HistoryHandler) GetHistoryHandler(c *gin.Context) {
	symbol := c.Param("symbol")
	period := c.DefaultQuery("period", usecase.DefaultPeriod)
	interval := c.DefaultQuery("interval", usecase.DefaultInterval)
	withSMA := strings.EqualFold(c.Query("calculate_sma"), "true")

	series, err := h.uc.GetHistory(c.Request.Context(), symbol, period, interval, withSMA)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: fmt.Sprintf("Unsupported interval: %s", interval)})
		case errors.Is(err, usecase.ErrRangeTooNarrow):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: fmt.Sprintf("The requested %s interval data is not available for the specified period. Try a larger interval (like '1d') for longer periods.", interval),
			})
		case errors.Is(err, usecase.ErrNoData):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: fmt.Sprintf("No historical data found for %s", symbol)})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fmt.Sprintf("Failed to fetch historical data for %s", symbol)})
		}
		return
	}

	out := dto.HistoryResponse{
		Symbol:   series.Symbol,
		History:  make([]dto.HistoricalPointResponse, 0, len(series.Points)),
		Period:   series.Period,
		Interval: series.Interval,
		SMA:      series.SMA,
	}
	for _, p := range series.Points {
		out.History = append(out.History, dto.HistoricalPointResponse{
			Date:          p.Date,
			Open:          p.Open,
			High:          p.High,
			Low:           p.Low,
			Close:         p.Close,
			Volume:        p.Volume,
			Change:        p.Change,
			ChangePercent: p.ChangePercent,
		})
	}
	if adj := series.Adjustment; adj != nil {
		adjusted := true
		out.Adjusted = &adjusted
		out.RequestedPeriod = adj.Requested
		out.ActualPeriod = adj.Effective
		out.Message = adj.Reason
	}

	c.JSON(http.StatusOK, out)
}
