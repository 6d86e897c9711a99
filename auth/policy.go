package auth

import (
	"github.com/google/uuid"

	"sportzone-booking/model"
)

// Capabilities is what a session may do with the booking core.
type Capabilities struct {
	Book    bool
	ViewAll bool
}

type Policy interface {
	Capabilities(role model.Role) Capabilities
}

// RolePolicy lets users book and admins view bookings.
type RolePolicy struct{}

func (RolePolicy) Capabilities(role model.Role) Capabilities {
	switch role {
	case model.RoleUser:
		return Capabilities{Book: true}
	case model.RoleAdmin:
		return Capabilities{ViewAll: true}
	default:
		return Capabilities{}
	}
}

// OpenPolicy grants everything. It backs the flat menu, which has no login.
type OpenPolicy struct{}

func (OpenPolicy) Capabilities(model.Role) Capabilities {
	return Capabilities{Book: true, ViewAll: true}
}

// Session lives for one run of a menu loop and is never persisted.
type Session struct {
	ID           uuid.UUID
	User         model.UserData
	capabilities Capabilities
}

func NewSession(user model.UserData, policy Policy) Session {
	return Session{
		ID:           uuid.New(),
		User:         user,
		capabilities: policy.Capabilities(user.Role),
	}
}

// GuestSession is the session of the flat menu.
func GuestSession(policy Policy) Session {
	return NewSession(model.UserData{Login: "guest", Role: model.RoleGuest}, policy)
}

func (s Session) CanBook() bool {
	return s.capabilities.Book
}

func (s Session) CanViewAll() bool {
	return s.capabilities.ViewAll
}
