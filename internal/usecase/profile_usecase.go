package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
)

type ProfileUsecase struct {
	users repo.UserRepository
}

func NewProfileUsecase(users repo.UserRepository) *ProfileUsecase {
	return &ProfileUsecase{users: users}
}

type ProfileOutput struct {
	ID           uuid.UUID         `json:"id"`
	Email        string            `json:"email"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	FullName     string            `json:"full_name"`
	Avatar       string            `json:"avatar"`
	AccountType  model.AccountType `json:"account_type"`
	Capabilities []string          `json:"capabilities"`
}

type ProfileUpdateInput struct {
	FirstName *string
	LastName  *string
	Avatar    *string
}

func toProfileOutput(u model.User, caps model.Capability) ProfileOutput {
	return ProfileOutput{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		FullName:     u.FullName(),
		Avatar:       u.Avatar,
		AccountType:  u.AccountType,
		Capabilities: caps.Strings(),
	}
}

func (u *ProfileUsecase) load(ctx context.Context, p model.Principal) (model.User, error) {
	user, ok, err := u.users.FindByID(ctx, p.UserID)
	if err != nil {
		return model.User{}, dbError(err)
	}
	if !ok {
		return model.User{}, errNotFound("user")
	}
	return user, nil
}

func (u *ProfileUsecase) Get(ctx context.Context, p model.Principal) (ProfileOutput, error) {
	user, err := u.load(ctx, p)
	if err != nil {
		return ProfileOutput{}, err
	}
	return toProfileOutput(user, p.Capabilities), nil
}

func (u *ProfileUsecase) Update(ctx context.Context, p model.Principal, in ProfileUpdateInput) (ProfileOutput, error) {
	user, err := u.load(ctx, p)
	if err != nil {
		return ProfileOutput{}, err
	}

	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Avatar != nil {
		user.Avatar = strings.TrimSpace(*in.Avatar)
	}
	if len(user.FirstName) > 50 || len(user.LastName) > 50 {
		return ProfileOutput{}, errInvalid("name too long")
	}

	if err := u.users.UpdateProfile(ctx, &user); err != nil {
		return ProfileOutput{}, dbError(err)
	}
	return toProfileOutput(user, p.Capabilities), nil
}

// Deactivate はアカウント停止。発行済みトークンも使えなくなる。
func (u *ProfileUsecase) Deactivate(ctx context.Context, p model.Principal) error {
	if err := u.users.Deactivate(ctx, p.UserID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("user")
		}
		return dbError(err)
	}
	return nil
}
