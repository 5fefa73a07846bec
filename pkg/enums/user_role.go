package enums

// UserRole is the role published in identity-provider metadata.
type UserRole string

const (
	UserRoleBuyer  UserRole = "buyer"
	UserRoleSeller UserRole = "seller"
	UserRoleAdmin  UserRole = "admin"
)

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleBuyer, UserRoleSeller, UserRoleAdmin:
		return true
	}
	return false
}

// ParseUserRole never fails: anything unknown or empty is a buyer.
func ParseUserRole(value string) UserRole {
	role := UserRole(value)
	if !role.IsValid() {
		return UserRoleBuyer
	}
	return role
}
