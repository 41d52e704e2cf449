package usecase

import (
	"strings"

	"holdings_backend/internal/feature/quote/domain/entity"
)

// ClassifyAsset はプロバイダの生のquoteTypeトークンを既定の資産種別へ
// 対応付けます。失敗しない純粋関数で、未知または欠損のメタデータは
// 株式として分類します。
func ClassifyAsset(symbol string, meta *entity.QuoteMetadata) entity.AssetType {
	if meta == nil {
		return entity.AssetTypeStock
	}
	switch strings.ToLower(meta.QuoteType) {
	case "etf":
		return entity.AssetTypeETF
	case "cryptocurrency":
		return entity.AssetTypeCrypto
	default:
		return entity.AssetTypeStock
	}
}
