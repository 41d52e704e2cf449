// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"holdings_backend/internal/feature/portfolio/domain/entity"
	"holdings_backend/internal/feature/portfolio/transport/http/dto"
	"holdings_backend/internal/feature/portfolio/usecase"
	jwtmw "holdings_backend/internal/platform/jwt"
)

// PortfolioUsecase はポートフォリオ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PortfolioUsecase interface {
	GetPortfolio(ctx context.Context, userID uint) ([]entity.ValuedHolding, entity.Summary, error)
	AddHolding(ctx context.Context, userID uint, symbol string, shares, averageCost float64) (*entity.Holding, error)
	UpdateHolding(ctx context.Context, userID uint, symbol string, shares, averageCost float64) error
	DeleteHolding(ctx context.Context, userID uint, symbol string) error
	Reorder(ctx context.Context, userID uint, symbols []string) error
	Upload(ctx context.Context, userID uint, holdings []entity.Holding) error
}

// PortfolioHandler はポートフォリオのHTTPリクエストを処理します。
type PortfolioHandler struct {
	uc PortfolioUsecase
}

// NewPortfolioHandler は指定されたusecaseでPortfolioHandlerの新しいインスタンスを生成します。
func NewPortfolioHandler(uc PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

// GetPortfolioHandler は評価済みポートフォリオと集計をJSONで返します。
//
// エンドポイント例:
// GET /api/portfolio
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	valued, summary, err := h.uc.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Database error fetching portfolio."})
		return
	}

	out := dto.PortfolioResponse{
		Holdings: make([]dto.ValuedHoldingResponse, 0, len(valued)),
		Summary: dto.SummaryResponse{
			TotalValue:       summary.TotalValue,
			TotalGain:        summary.TotalGain,
			TotalGainPercent: summary.TotalGainPercent,
			DayChange:        summary.DayChange,
			DayChangePercent: summary.DayChangePercent,
		},
	}
	for _, vh := range valued {
		out.Holdings = append(out.Holdings, toValuedResponse(vh))
	}

	c.JSON(http.StatusOK, out)
}

// AddHoldingHandler は保有銘柄を1件追加します。
//
// エンドポイント例:
// POST /api/portfolio/add
func (h *PortfolioHandler) AddHoldingHandler(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	var req dto.HoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.uc.AddHolding(c.Request.Context(), userID, req.Symbol, req.Shares, req.AverageCost)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrHoldingExists):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Holding already exists. Use PUT to update."})
		case errors.Is(err, usecase.ErrInvalidHolding):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Database error adding holding."})
		}
		return
	}

	c.JSON(http.StatusOK, toHoldingResponse(created))
}

// UpdateHoldingHandler は既存の保有銘柄の株数と平均取得単価を更新します。
//
// エンドポイント例:
// PUT /api/portfolio/update
func (h *PortfolioHandler) UpdateHoldingHandler(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	var req dto.HoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.uc.UpdateHolding(c.Request.Context(), userID, req.Symbol, req.Shares, req.AverageCost)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrHoldingNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Holding not found"})
		case errors.Is(err, usecase.ErrInvalidHolding):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Database error updating holding."})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Holding updated successfully"})
}

// DeleteHoldingHandler は保有銘柄を1件削除します。
//
// エンドポイント例:
// DELETE /api/portfolio/delete/AAPL
func (h *PortfolioHandler) DeleteHoldingHandler(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	symbol := c.Param("symbol")

	if err := h.uc.DeleteHolding(c.Request.Context(), userID, symbol); err != nil {
		if errors.Is(err, usecase.ErrHoldingNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Holding not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Database error deleting holding."})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Holding deleted successfully"})
}

// ReorderHandler は保有銘柄の表示順を並べ替えます。
//
// エンドポイント例:
// POST /api/portfolio/reorder
func (h *PortfolioHandler) ReorderHandler(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.uc.Reorder(c.Request.Context(), userID, req.OrderedSymbols); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Database error reordering portfolio."})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Portfolio reordered"})
}

// UploadHandler はポートフォリオ全体をアップロード内容で置き換えます。
//
// エンドポイント例:
// POST /api/portfolio/upload
func (h *PortfolioHandler) UploadHandler(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	var req []dto.HoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	holdings := make([]entity.Holding, len(req))
	for i, r := range req {
		holdings[i] = entity.Holding{
			Symbol:      r.Symbol,
			Shares:      r.Shares,
			AverageCost: r.AverageCost,
		}
	}

	if err := h.uc.Upload(c.Request.Context(), userID, holdings); err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyUpload):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No valid holdings data received."})
		case errors.Is(err, usecase.ErrDuplicateSymbols):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Duplicate symbols found in upload data."})
		case errors.Is(err, usecase.ErrInvalidHolding):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Database error uploading portfolio."})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("%d holdings uploaded successfully and portfolio overwritten.", len(holdings)),
	})
}

// toHoldingResponse は保有銘柄エンティティをレスポンスDTOに変換します。
func toHoldingResponse(h *entity.Holding) dto.HoldingResponse {
	return dto.HoldingResponse{
		Symbol:      h.Symbol,
		Shares:      h.Shares,
		AverageCost: h.AverageCost,
		Position:    h.Position,
	}
}

// toValuedResponse は評価済み保有銘柄をレスポンスDTOに変換します。
// Quote取得に失敗した行はtype/marketStateもnullになります。
func toValuedResponse(vh entity.ValuedHolding) dto.ValuedHoldingResponse {
	out := dto.ValuedHoldingResponse{
		Symbol:          vh.Symbol,
		Shares:          vh.Shares,
		AverageCost:     vh.AverageCost,
		Name:            vh.Name,
		CurrentPrice:    vh.CurrentPrice,
		Change:          vh.Change,
		ChangePercent:   vh.ChangePercent,
		Value:           vh.Value,
		Gain:            vh.Gain,
		GainPercent:     vh.GainPercent,
		PreMarketPrice:  vh.PreMarketPrice,
		PostMarketPrice: vh.PostMarketPrice,
	}
	if vh.AssetType != "" {
		out.Type = &vh.AssetType
	}
	if vh.MarketState != "" {
		out.MarketState = &vh.MarketState
	}
	return out
}
