package context

import (
	"context"

	"github.com/bondyapp/bondy/constant"
)

func GetUserID(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func GetAdminID(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.AdminIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constant.UserIDKey, id)
}

func WithAdminID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constant.AdminIDKey, id)
}
