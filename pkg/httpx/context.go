package httpx

import "context"

type ctxKey string

const (
	ctxKeyUserID ctxKey = "user_id"
	ctxKeyRole   ctxKey = "role"
)

// Identity is the authenticated principal attached to a request by
// AuthnMiddleware. Role is the snapshot embedded in the access token; a
// role change on the account is not visible here until the holder's next
// login or refresh.
type Identity struct {
	UserID string
	Role   string
}

// ContextWithIdentity attaches the authenticated identity to the context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUserID, id.UserID)
	return context.WithValue(ctx, ctxKeyRole, id.Role)
}

// IdentityFromContext extracts the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	userID, ok := ctx.Value(ctxKeyUserID).(string)
	if !ok || userID == "" {
		return Identity{}, false
	}
	role, _ := ctx.Value(ctxKeyRole).(string)
	return Identity{UserID: userID, Role: role}, true
}
