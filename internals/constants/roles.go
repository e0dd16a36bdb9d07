package constants

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Header checked by the admin-token middleware on write routes.
const AdminTokenHeader = "X-Admin-Token"
