package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"holdings_backend/internal/feature/portfolio/domain/entity"
	quoteentity "holdings_backend/internal/feature/quote/domain/entity"
	quoteuc "holdings_backend/internal/feature/quote/usecase"
)

const (
	// valuationWorkers はポートフォリオ評価時のQuote取得の並列数です。
	valuationWorkers = 4
	// quoteTimeout は1銘柄あたりのQuote取得に許容する時間です。
	quoteTimeout = 10 * time.Second
	// dataErrorSuffix はQuote取得に失敗した行の名前に付ける接尾辞です。
	dataErrorSuffix = " (Data Error)"
)

// HoldingRepository は保有銘柄の永続化層を抽象化します。
// インターフェースはプロバイダー（adapters）ではなくコンシューマー
// （usecase）側で定義します。複数行に及ぶ操作はアダプタ側で単一
// トランザクションとして実行されます。
type HoldingRepository interface {
	// ListByUser はユーザーの保有銘柄を表示位置順で返します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Holding, error)
	// Insert は保有銘柄を末尾の表示位置で追加します。
	// 同じ銘柄が既にある場合は ErrHoldingExists を返します。
	Insert(ctx context.Context, h *entity.Holding) error
	// Update は株数と平均取得単価を更新します。
	// 対象がない場合は ErrHoldingNotFound を返します。
	Update(ctx context.Context, userID uint, symbol string, shares, averageCost float64) error
	// Delete は保有銘柄を削除し、残りの表示位置を0..N-1に詰め直します。
	Delete(ctx context.Context, userID uint, symbol string) error
	// Reorder は指定された順序で表示位置を振り直します。
	Reorder(ctx context.Context, userID uint, orderedSymbols []string) error
	// ReplaceAll はユーザーのポートフォリオ全体をアトミックに置き換えます。
	ReplaceAll(ctx context.Context, userID uint, holdings []entity.Holding) error
	// DistinctSymbols は全ユーザーの保有銘柄の重複を除いた一覧を返します。
	DistinctSymbols(ctx context.Context) ([]string, error)
}

// QuoteService は正規化済みQuoteの取得を抽象化します。
type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) (*quoteentity.Quote, error)
}

// portfolioUsecase は保有銘柄のCRUDとポートフォリオ評価を実装します。
type portfolioUsecase struct {
	holdings HoldingRepository
	quotes   QuoteService
}

// NewPortfolioUsecase はportfolioUsecaseの新しいインスタンスを生成します。
func NewPortfolioUsecase(holdings HoldingRepository, quotes QuoteService) *portfolioUsecase {
	return &portfolioUsecase{holdings: holdings, quotes: quotes}
}

// GetPortfolio はユーザーの保有銘柄をライブのQuoteで評価し、明細と集計を返します。
//
// Quote取得は銘柄ごとに独立しているためワーカー数を絞って並列化しますが、
// 結果の順序は保有銘柄の表示位置順のまま保たれます。1銘柄の取得失敗は
// その行の派生フィールドをnilにするだけで、レスポンス全体を失敗させる
// ことはありません。
func (pu *portfolioUsecase) GetPortfolio(ctx context.Context, userID uint) ([]entity.ValuedHolding, entity.Summary, error) {
	holdings, err := pu.holdings.ListByUser(ctx, userID)
	if err != nil {
		return nil, entity.Summary{}, fmt.Errorf("list holdings: %w", err)
	}

	valued := make([]entity.ValuedHolding, len(holdings))
	sem := make(chan struct{}, valuationWorkers)
	var wg sync.WaitGroup
	for i, h := range holdings {
		wg.Add(1)
		go func(i int, h entity.Holding) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			valued[i] = pu.valueHolding(ctx, h)
		}(i, h)
	}
	wg.Wait()

	return valued, summarize(valued), nil
}

// valueHolding は1保有銘柄をQuoteで評価します。取得失敗時は派生フィールドを
// nilのまま残し、名前に失敗マーカーを付けます。
func (pu *portfolioUsecase) valueHolding(ctx context.Context, h entity.Holding) entity.ValuedHolding {
	vh := entity.ValuedHolding{Holding: h}

	qctx, cancel := context.WithTimeout(ctx, quoteTimeout)
	defer cancel()

	q, err := pu.quotes.GetQuote(qctx, h.Symbol)
	if err != nil {
		vh.Name = h.Symbol + dataErrorSuffix
		return vh
	}

	price := q.Price
	value := h.Shares * price
	gain := (price - h.AverageCost) * h.Shares
	change := q.Change

	vh.Name = q.Name
	vh.AssetType = string(q.AssetType)
	vh.MarketState = string(q.MarketState)
	vh.PreMarketPrice = q.PreMarketPrice
	vh.PostMarketPrice = q.PostMarketPrice
	vh.CurrentPrice = &price
	vh.Change = &change
	vh.ChangePercent = &q.ChangePercent
	vh.Value = &value
	vh.Gain = &gain
	gainPercent := 0.0
	if h.AverageCost > 0 {
		gainPercent = (price/h.AverageCost - 1) * 100
	}
	vh.GainPercent = &gainPercent
	return vh
}

// summarize はポートフォリオ全体の集計を計算します。
// 合計評価額は評価に成功した行のみで、取得原価は評価の成否に
// かかわらず全行で計算します。評価に失敗した行は含み損として
// 現れることになります。
func summarize(valued []entity.ValuedHolding) entity.Summary {
	var s entity.Summary
	var costBasis, dayStart float64
	for _, vh := range valued {
		costBasis += vh.Shares * vh.AverageCost
		if vh.Value == nil {
			continue
		}
		s.TotalValue += *vh.Value
		if vh.Change != nil {
			dayChange := *vh.Change * vh.Shares
			s.DayChange += dayChange
			dayStart += *vh.Value - dayChange
		}
	}
	s.TotalGain = s.TotalValue - costBasis
	if costBasis > 0 {
		s.TotalGainPercent = s.TotalGain / costBasis * 100
	}
	if dayStart > 0 {
		s.DayChangePercent = s.DayChange / dayStart * 100
	}
	return s
}

// AddHolding は保有銘柄を末尾に追加します。
func (pu *portfolioUsecase) AddHolding(ctx context.Context, userID uint, symbol string, shares, averageCost float64) (*entity.Holding, error) {
	symbol = quoteuc.NormalizeSymbol(symbol)
	if err := validateHolding(symbol, shares, averageCost); err != nil {
		return nil, err
	}
	h := &entity.Holding{
		UserID:      userID,
		Symbol:      symbol,
		Shares:      shares,
		AverageCost: averageCost,
	}
	if err := pu.holdings.Insert(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// UpdateHolding は既存の保有銘柄の株数と平均取得単価を更新します。
func (pu *portfolioUsecase) UpdateHolding(ctx context.Context, userID uint, symbol string, shares, averageCost float64) error {
	symbol = quoteuc.NormalizeSymbol(symbol)
	if err := validateHolding(symbol, shares, averageCost); err != nil {
		return err
	}
	return pu.holdings.Update(ctx, userID, symbol, shares, averageCost)
}

// DeleteHolding は保有銘柄を削除します。残りの表示位置はアダプタ側で
// 詰め直されます。
func (pu *portfolioUsecase) DeleteHolding(ctx context.Context, userID uint, symbol string) error {
	return pu.holdings.Delete(ctx, userID, quoteuc.NormalizeSymbol(symbol))
}

// Reorder は保有銘柄の表示順を指定された銘柄順に並べ替えます。
func (pu *portfolioUsecase) Reorder(ctx context.Context, userID uint, symbols []string) error {
	normalized := make([]string, len(symbols))
	for i, s := range symbols {
		normalized[i] = quoteuc.NormalizeSymbol(s)
	}
	return pu.holdings.Reorder(ctx, userID, normalized)
}

// Upload はポートフォリオ全体をアップロードされた内容で置き換えます。
// 置き換えはアトミックで、検証エラー時は既存データに一切触れません。
func (pu *portfolioUsecase) Upload(ctx context.Context, userID uint, holdings []entity.Holding) error {
	if len(holdings) == 0 {
		return ErrEmptyUpload
	}
	seen := make(map[string]struct{}, len(holdings))
	rows := make([]entity.Holding, len(holdings))
	for i, h := range holdings {
		symbol := quoteuc.NormalizeSymbol(h.Symbol)
		if err := validateHolding(symbol, h.Shares, h.AverageCost); err != nil {
			return err
		}
		if _, dup := seen[symbol]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSymbols, symbol)
		}
		seen[symbol] = struct{}{}
		rows[i] = entity.Holding{
			UserID:      userID,
			Symbol:      symbol,
			Shares:      h.Shares,
			AverageCost: h.AverageCost,
			Position:    i,
		}
	}
	return pu.holdings.ReplaceAll(ctx, userID, rows)
}

// validateHolding は銘柄・株数・平均取得単価の共通検証です。
func validateHolding(symbol string, shares, averageCost float64) error {
	if strings.TrimSpace(symbol) == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidHolding)
	}
	if shares <= 0 {
		return fmt.Errorf("%w: shares must be positive", ErrInvalidHolding)
	}
	if averageCost < 0 {
		return fmt.Errorf("%w: average cost must not be negative", ErrInvalidHolding)
	}
	return nil
}
