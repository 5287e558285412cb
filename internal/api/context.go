package api

import (
	"context"

	"cleanbook/internal/auth"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

func WithUser(ctx context.Context, u *auth.VerifiedUser) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

func UserFromContext(ctx context.Context) *auth.VerifiedUser {
	v := ctx.Value(ctxKeyUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*auth.VerifiedUser)
	return u
}
