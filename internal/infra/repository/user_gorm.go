package repository

import (
	"context"

	"marketplace/internal/domain/model"
	domainrepo "marketplace/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	return createErr(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (model.User, bool, error) {
	var u model.User
	ok, err := found(r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error)
	return u, ok, err
}

func (r *userGormRepository) FindByID(ctx context.Context, id uuid.UUID) (model.User, bool, error) {
	var u model.User
	ok, err := found(r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error)
	return u, ok, err
}

func (r *userGormRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"avatar":     user.Avatar,
		})
	return affected(res)
}

func (r *userGormRepository) SetAccountType(ctx context.Context, id uuid.UUID, t model.AccountType) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("account_type", t)
	return affected(res)
}

// 停止と同時にtoken_versionを+1する
func (r *userGormRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":     false,
			"token_version": gorm.Expr("token_version + ?", 1),
		})
	return affected(res)
}
