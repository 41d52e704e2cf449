// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"holdings_backend/internal/feature/watchlist/domain/entity"
	"holdings_backend/internal/feature/watchlist/transport/http/dto"
	"holdings_backend/internal/feature/watchlist/usecase"
	jwtmw "holdings_backend/internal/platform/jwt"
)

// WatchlistUsecase はウォッチリスト操作のユースケースインターフェースを定義します。
type WatchlistUsecase interface {
	GetWatchlistDetails(ctx context.Context, userID uint) ([]entity.WatchlistItem, error)
	Add(ctx context.Context, userID uint, symbol string) (string, error)
	Remove(ctx context.Context, userID uint, symbol string) (string, error)
}

// WatchlistHandler はウォッチリストのHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は指定されたusecaseでWatchlistHandlerの新しいインスタンスを生成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// GetWatchlistHandler はウォッチ銘柄をライブQuote付きでJSONで返します。
//
// エンドポイント例:
// GET /api/watchlist
func (h *WatchlistHandler) GetWatchlistHandler(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	items, err := h.uc.GetWatchlistDetails(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Database error fetching watchlist."})
		return
	}

	out := make([]dto.WatchlistItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.WatchlistItemResponse{
			Symbol:         item.Symbol,
			Name:           item.Name,
			Price:          item.Price,
			Change:         item.Change,
			ChangePercent:  item.ChangePercent,
			PreMarketPrice: item.PreMarketPrice,
			MarketState:    item.MarketState,
		})
	}

	c.JSON(http.StatusOK, out)
}

// AddToWatchlistHandler は銘柄をウォッチリストに追加します。追加済みでも成功を返します。
//
// エンドポイント例:
// POST /api/watchlist/add/AAPL
func (h *WatchlistHandler) AddToWatchlistHandler(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	symbol, err := h.uc.Add(c.Request.Context(), userID, c.Param("symbol"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAlreadyWatched):
			c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("%s is already in watchlist", symbol)})
		case errors.Is(err, usecase.ErrInvalidSymbol):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid symbol format"})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Database error adding to watchlist."})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Symbol added to watchlist"})
}

// RemoveFromWatchlistHandler は銘柄をウォッチリストから削除します。
// 未登録でも成功扱いのメッセージを返します。
//
// エンドポイント例:
// DELETE /api/watchlist/remove/AAPL
func (h *WatchlistHandler) RemoveFromWatchlistHandler(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	symbol, err := h.uc.Remove(c.Request.Context(), userID, c.Param("symbol"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotWatched) {
			c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("%s not found in watchlist", symbol)})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Database error removing from watchlist."})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("%s removed from watchlist", symbol)})
}
