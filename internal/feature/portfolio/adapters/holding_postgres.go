// Package adapters はportfolioフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"holdings_backend/internal/feature/portfolio/domain/entity"
	"holdings_backend/internal/feature/portfolio/usecase"
)

// pgUniqueViolation はPostgreSQLのunique_violationエラーコードです。
const pgUniqueViolation = "23505"

// holdingPostgres はHoldingRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type holdingPostgres struct {
	db *gorm.DB
}

// holdingPostgresがHoldingRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.HoldingRepository = (*holdingPostgres)(nil)

// NewHoldingPostgres は指定されたgorm.DB接続でholdingPostgresの新しいインスタンスを生成します。
func NewHoldingPostgres(db *gorm.DB) *holdingPostgres {
	return &holdingPostgres{db: db}
}

// ListByUser はユーザーの保有銘柄を表示位置順で返します。
func (r *holdingPostgres) ListByUser(ctx context.Context, userID uint) ([]entity.Holding, error) {
	var holdings []entity.Holding
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&holdings).Error; err != nil {
		return nil, err
	}
	return holdings, nil
}

// Insert は保有銘柄を末尾の表示位置で追加します。
// 表示位置の採番と挿入は同一トランザクションで行います。
// (user_id, symbol) のユニーク制約違反はusecase.ErrHoldingExistsに変換します。
func (r *holdingPostgres) Insert(ctx context.Context, h *entity.Holding) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Holding{}).
			Where("user_id = ?", h.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		h.Position = int(count)
		return tx.Create(h).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrHoldingExists
		}
		return err
	}
	return nil
}

// Update は株数と平均取得単価を更新します。
func (r *holdingPostgres) Update(ctx context.Context, userID uint, symbol string, shares, averageCost float64) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Holding{}).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Updates(map[string]any{"shares": shares, "average_cost": averageCost})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrHoldingNotFound
	}
	return nil
}

// Delete は保有銘柄を削除し、残った行の表示位置を0..N-1に詰め直します。
// 削除と採番は同一トランザクションで行います。
func (r *holdingPostgres) Delete(ctx context.Context, userID uint, symbol string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND symbol = ?", userID, symbol).
			Delete(&entity.Holding{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrHoldingNotFound
		}
		return renumber(tx, userID)
	})
}

// Reorder は指定された銘柄順に表示位置を振り直します。
// 指定に含まれない銘柄は現在の相対順のまま末尾に回します。
func (r *holdingPostgres) Reorder(ctx context.Context, userID uint, orderedSymbols []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []entity.Holding
		if err := tx.Where("user_id = ?", userID).
			Order("position ASC").
			Find(&current).Error; err != nil {
			return err
		}

		pos := 0
		assigned := make(map[string]int, len(current))
		for _, symbol := range orderedSymbols {
			if _, done := assigned[symbol]; done {
				continue
			}
			for _, h := range current {
				if h.Symbol == symbol {
					assigned[symbol] = pos
					pos++
					break
				}
			}
		}
		for _, h := range current {
			if _, done := assigned[h.Symbol]; !done {
				assigned[h.Symbol] = pos
				pos++
			}
		}

		for symbol, position := range assigned {
			if err := tx.Model(&entity.Holding{}).
				Where("user_id = ? AND symbol = ?", userID, symbol).
				Update("position", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceAll はユーザーの保有銘柄を渡された内容でアトミックに置き換えます。
func (r *holdingPostgres) ReplaceAll(ctx context.Context, userID uint, holdings []entity.Holding) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&entity.Holding{}).Error; err != nil {
			return err
		}
		if len(holdings) == 0 {
			return nil
		}
		return tx.Create(&holdings).Error
	})
}

// DistinctSymbols は全ユーザーの保有銘柄の重複を除いた一覧を返します。
// キャッシュのウォームアップに使用します。
func (r *holdingPostgres) DistinctSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Holding{}).
		Distinct("symbol").
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// renumber はユーザーの保有銘柄の表示位置を現在の順序のまま0..N-1に詰め直します。
func renumber(tx *gorm.DB, userID uint) error {
	var remaining []entity.Holding
	if err := tx.Where("user_id = ?", userID).
		Order("position ASC").
		Find(&remaining).Error; err != nil {
		return err
	}
	for i, h := range remaining {
		if h.Position == i {
			continue
		}
		if err := tx.Model(&entity.Holding{}).
			Where("id = ?", h.ID).
			Update("position", i).Error; err != nil {
			return err
		}
	}
	return nil
}

// isUniqueViolation はPostgreSQLのユニーク制約違反かどうかを判定します。
// テストで使うSQLiteのgorm.ErrDuplicatedKeyも同様に扱います。
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
