package domain

// Role is an employee's application role within its company.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Identity is the verified caller identity extracted from a bearer token.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CompanyID string `json:"company_id"`
}

// IsAdmin reports whether the identity carries the ADMIN role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// AssertTenantAccess checks that the caller may access a row owned by
// companyID. Admins pass unconditionally; everyone else must belong to the
// same company. This is the post-fetch guard applied after unconditional
// reads such as GetByID.
func AssertTenantAccess(companyID string, caller Identity) error {
	if caller.IsAdmin() {
		return nil
	}
	if companyID != caller.CompanyID {
		return ErrForbidden
	}
	return nil
}
