package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	"marketplace/internal/repository"

	"github.com/google/uuid"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type LoginOutput struct {
	User  model.User     `json:"user"`
	Token JwtAccessToken `json:"token"`
}

// メールまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// 停止済みユーザー
var ErrUserInactive = errors.New("user is inactive")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID uuid.UUID, caps model.Capability, tokenVersion int, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type LoginUsecase struct {
	userRepo   repository.UserRepository
	sellerRepo repository.SellerRepository
	verifier   PasswordVerifier
	issuer     AccessTokenIssuer
	clock      Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	sellerRepo repository.SellerRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo:   userRepo,
		sellerRepo: sellerRepo,
		verifier:   verifier,
		issuer:     issuer,
		clock:      clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	user, ok, err := u.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return out, err
	}
	if !ok {
		return out, ErrInvalidCredentials
	}

	//パスワード照合を先にして、停止かどうかは本人にだけ分かるようにする
	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return out, ErrInvalidCredentials
	}
	if !user.IsActive {
		return out, ErrUserInactive
	}

	var seller *model.Seller
	if s, found, err := u.sellerRepo.FindByUserID(ctx, user.ID); err != nil {
		return out, err
	} else if found {
		seller = &s
	}

	now := u.clock.Now()
	accessToken, accessExp, err := u.issuer.Issue(user.ID, model.CapabilitiesOf(user, seller), user.TokenVersion, now)
	if err != nil {
		return out, err
	}

	safeUser := user
	safeUser.PasswordHash = ""

	out.User = safeUser
	out.Token = JwtAccessToken{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(accessExp.Sub(now).Seconds()),
	}
	return out, nil
}
