package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
)

// ユーザーの保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成。email重複はErrDuplicate
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID uuid.UUID) (model.User, bool, error)
	FindByEmail(ctx context.Context, email string) (model.User, bool, error)
	//プロフィール項目の更新
	UpdateProfile(ctx context.Context, user *model.User) error
	SetAccountType(ctx context.Context, userID uuid.UUID, t model.AccountType) error
	//停止してtoken_versionを+1（発行済みトークンを無効化）
	Deactivate(ctx context.Context, userID uuid.UUID) error
}
