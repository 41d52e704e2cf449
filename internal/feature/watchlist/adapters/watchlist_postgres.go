// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"holdings_backend/internal/feature/watchlist/domain/entity"
	"holdings_backend/internal/feature/watchlist/usecase"
)

// pgUniqueViolation はPostgreSQLのunique_violationエラーコードです。
const pgUniqueViolation = "23505"

// watchlistPostgres はWatchlistRepositoryインターフェースのPostgreSQL実装です。
type watchlistPostgres struct {
	db *gorm.DB
}

// watchlistPostgresがWatchlistRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.WatchlistRepository = (*watchlistPostgres)(nil)

// NewWatchlistPostgres は指定されたgorm.DB接続でwatchlistPostgresの新しいインスタンスを生成します。
func NewWatchlistPostgres(db *gorm.DB) *watchlistPostgres {
	return &watchlistPostgres{db: db}
}

// ListSymbols はユーザーのウォッチ銘柄を登録順で返します。
func (r *watchlistPostgres) ListSymbols(ctx context.Context, userID uint) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.WatchlistEntry{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// Insert はウォッチ銘柄を追加します。
// 追加済みの場合とユニーク制約違反はusecase.ErrAlreadyWatchedに変換します。
func (r *watchlistPostgres) Insert(ctx context.Context, userID uint, symbol string) error {
	var existing entity.WatchlistEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		First(&existing).Error
	if err == nil {
		return usecase.ErrAlreadyWatched
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	entry := &entity.WatchlistEntry{UserID: userID, Symbol: symbol}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		// 同時挿入との競合はユニーク制約で検知する

		if isUniqueViolation(err) {
			return usecase.ErrAlreadyWatched
		}
		return err
	}
	return nil
}

// Delete はウォッチ銘柄を削除します。
func (r *watchlistPostgres) Delete(ctx context.Context, userID uint, symbol string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&entity.WatchlistEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotWatched
	}
	return nil
}

// DistinctSymbols は全ユーザーのウォッチ銘柄の重複を除いた一覧を返します。
// キャッシュのウォームアップに使用します。
func (r *watchlistPostgres) DistinctSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.WatchlistEntry{}).
		Distinct("symbol").
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
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
