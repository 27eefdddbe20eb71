package constants

const (
	RoleAdmin  = "admin"
	RoleTenant = "tenant"
)

// Pesan error role
const (
	ErrOnlyAdminsCanAccess  = "Forbidden."
	ErrOnlyTenantsCanAccess = "Forbidden."
)

var (
	AllRoles = []string{
		RoleAdmin,
		RoleTenant,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	TenantOnly = []string{
		RoleTenant,
	}
)
