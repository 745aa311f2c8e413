package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kv_entriesテーブルに保存するKV
type KVGormRepository struct {
	db *gorm.DB
}

// DI
func NewKVGormRepository(db *gorm.DB) *KVGormRepository {
	return &KVGormRepository{db: db}
}

// テーブル作成
func (r *KVGormRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&model.KVEntry{})
}

// キーで取得
func (r *KVGormRepository) Get(ctx context.Context, key string) (string, error) {
	var e model.KVEntry

	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&e).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

// 同じキーは上書き
func (r *KVGormRepository) Set(ctx context.Context, key string, value string) error {
	e := model.KVEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
}

// 削除（無くてもOK）
func (r *KVGormRepository) Remove(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.KVEntry{}).Error
}
