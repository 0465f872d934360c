package services

import "academy/models"

// Actor is the authenticated caller of a core operation. A nil *Actor means
// the request carried no valid identity.
type Actor struct {
	UserID   uint
	Username string
	Email    string
	IsAdmin  bool
}

// ActorFor builds the authenticated context for a stored user
func ActorFor(u *models.User) *Actor {
	return &Actor{UserID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin}
}

// RequireActor fails with ErrUnauthenticated when no identity is present
func RequireActor(a *Actor) error {
	if a == nil || a.UserID == 0 {
		return ErrUnauthenticated
	}
	return nil
}

// RequireAdmin is the single admin capability check
func (a *Actor) RequireAdmin() error {
	if err := RequireActor(a); err != nil {
		return err
	}
	if !a.IsAdmin {
		return ErrForbidden
	}
	return nil
}
