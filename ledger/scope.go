package ledger

// Scope identifies whose data a request may see. An organization scope
// covers every account of that organization; a personal scope covers the
// user's own accounts that are not attached to any organization.
type Scope struct {
	UserID string
	OrgID  string
}

// Valid reports whether the scope carries an authenticated user.
func (s Scope) Valid() bool {
	return s.UserID != ""
}

// IsOrg reports whether the scope is an organization context.
func (s Scope) IsOrg() bool {
	return s.OrgID != ""
}

// Owns reports whether an account with the given owner fields is visible
// within the scope.
func (s Scope) Owns(userID string, orgID *string) bool {
	if s.IsOrg() {
		return orgID != nil && *orgID == s.OrgID
	}
	return userID == s.UserID && orgID == nil
}
