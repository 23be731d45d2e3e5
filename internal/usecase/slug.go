package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode"

	repo "marketplace/internal/repository"

	"github.com/google/uuid"
)

// 英数字以外をハイフンにして小文字化する
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// 既に使われていれば短いサフィックスを付ける
func uniqueSlug(ctx context.Context, base string, exists func(context.Context, string) (bool, error)) (string, error) {
	slug := slugify(base)
	if slug == "" {
		slug = "item"
	}
	candidate := slug
	for i := 0; i < 5; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = slug + "-" + uuid.NewString()[:8]
	}
	return slug + "-" + uuid.NewString(), nil
}

// createWithSlug は空いているslugで作成する。
// 確認とinsertの間に同じslugを取られたら、1回だけ作り直す。
func createWithSlug(ctx context.Context, base string, exists func(context.Context, string) (bool, error), create func(slug string) error) error {
	for attempt := 0; attempt < 2; attempt++ {
		slug, err := uniqueSlug(ctx, base, exists)
		if err != nil {
			return dbError(err)
		}
		err = create(slug)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repo.ErrDuplicate) {
			return dbError(err)
		}
	}
	return errConflict("slug already taken")
}
