package shared

import "context"

type userIDContextKey struct{}

// ContextWithUserID stores the authenticated user id in context. The gateway
// in front of this service resolves credentials; handlers only need the id
// for created_by / posted_by stamping.
func ContextWithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDContextKey{}, id)
}

// UserIDFromContext extracts the user id from context, zero when absent.
func UserIDFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDContextKey{}).(int64)
	return id
}
