package usecase

import (
	"context"
	"time"

	"marketplace/internal/domain/model"
)

type Clock interface {
	Now() time.Time
}

// 注文の参照コード(tx_ref)を作る
type RefGenerator func() (string, error)

// 商品詳細のキャッシュ。実装はRedisかNoop。
type ProductCache interface {
	Get(ctx context.Context, slug string) (model.Product, bool, error)
	Set(ctx context.Context, p model.Product) error
	Invalidate(ctx context.Context, slug string) error
}

// 注文作成後のイベント送信
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, o model.Order) error
}

// gommonのLoggerやecho.Loggerをそのまま渡せる
type Logger interface {
	Warnf(format string, args ...interface{})
}
