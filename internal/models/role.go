package models

// Role is a closed enum over the known account roles. Anything the parser
// does not recognize becomes RoleGuest, so a missing or misspelled role can
// never select an undefined menu.
type Role string

const (
	RoleClient Role = "client"
	RoleArtist Role = "artist"
	RoleAdmin  Role = "admin"
	RoleGuest  Role = "guest"
)

// ParseRole maps an arbitrary role string to a known Role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleClient, RoleArtist, RoleAdmin:
		return Role(s)
	}
	return RoleGuest
}

// MenuItem is one navigation entry of the role menu.
type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// MenuFor returns the statically known menu configuration for a role.
func MenuFor(role Role) []MenuItem {
	switch role {
	case RoleClient:
		return []MenuItem{
			{Label: "Dashboard", Path: "/dashboard"},
			{Label: "My Orders", Path: "/orders"},
			{Label: "New Request", Path: "/orders/new"},
			{Label: "Chat", Path: "/chat"},
			{Label: "Profile", Path: "/profile"},
		}
	case RoleArtist:
		return []MenuItem{
			{Label: "Dashboard", Path: "/dashboard"},
			{Label: "Assigned Orders", Path: "/orders"},
			{Label: "Pending Requests", Path: "/orders/pending"},
			{Label: "Chat", Path: "/chat"},
			{Label: "Profile", Path: "/profile"},
		}
	case RoleAdmin:
		return []MenuItem{
			{Label: "Dashboard", Path: "/dashboard"},
			{Label: "All Orders", Path: "/orders"},
			{Label: "Users", Path: "/users"},
			{Label: "Profile", Path: "/profile"},
		}
	default:
		return []MenuItem{
			{Label: "Sign In", Path: "/auth/login"},
		}
	}
}
