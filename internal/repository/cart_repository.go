package repository

import "context"

// カートのスナップショットを文字列で保存するKVの約束。
// localStorageの置き換え。
type KVStore interface {
	// 無ければ ErrNotFound
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	// 無くてもエラーにしない
	Remove(ctx context.Context, key string) error
}
