package roles

// Role is the backend-assigned access tier of a visitor. The backend is the
// only source of truth for it; the frontend parses whatever string it was
// given and never upgrades it.
type Role string

const (
	// RoleReader covers ordinary visitors, including users carrying an
	// unknown or missing role value.
	RoleReader Role = "reader"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// Parse maps a backend role string onto the closed enum. Unknown values and
// the empty string collapse to RoleReader.
func Parse(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleAuthor:
		return RoleAuthor
	default:
		return RoleReader
	}
}

// Satisfies reports whether a user holding actual may enter an area that
// requires required. Admins satisfy every requirement; otherwise the roles
// must match exactly. RoleReader as a requirement means "any authenticated
// user".
func Satisfies(required, actual Role) bool {
	if actual == RoleAdmin {
		return true
	}
	return required == actual || required == RoleReader
}
