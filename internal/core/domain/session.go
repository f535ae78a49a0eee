package domain

// Session is the authenticated session record. Token and Identity are set
// and cleared together: a token without an identity (or the reverse) is an
// invalid state and must never be observable. The zero value means
// logged out.
type Session struct {
	// Token is the opaque bearer token issued by the auth backend.
	Token string

	// Identity is the display name of the signed-in user.
	Identity string
}

// IsZero reports whether no session is present.
func (s Session) IsZero() bool {
	return s.Token == "" && s.Identity == ""
}

// Valid reports whether the record is a complete logical session.
// A partially populated record (one field without the other) is invalid
// and callers must treat it as logged out.
func (s Session) Valid() bool {
	return s.Token != "" && s.Identity != ""
}
