package auth

import (
	"context"

	"hotel-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Session is the authenticated caller, decoded from a verified access token.
// It is passed explicitly to usecases that make ownership decisions.
type Session struct {
	userID uuid.UUID
	role   user.Role
}

func NewSession(userID uuid.UUID, role user.Role) Session {
	return Session{userID: userID, role: role}
}

func (s Session) UserID() uuid.UUID { return s.userID }
func (s Session) Role() user.Role   { return s.role }

func (s Session) IsZero() bool {
	return s.userID == uuid.Nil
}

// IsStaff covers staff and admin.
func (s Session) IsStaff() bool {
	return s.role.AtLeast(user.RoleStaff)
}

// CanAccess allows owners and staff.
func (s Session) CanAccess(ownerID uuid.UUID) bool {
	return s.userID == ownerID || s.IsStaff()
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
