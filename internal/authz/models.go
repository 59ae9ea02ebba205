// Package authz is the identity and authorization registry: it holds the
// contract owner and the role sets of companies, banks and tax offices, and
// answers whether a caller may perform an action.
package authz

// Role names one of the authorized role sets managed by the owner.
//
// Pensioners are not a role set: their identity is their own record in the
// pensioner registry, and the owner is a single fixed identifier.
type Role string

const (
	RoleCompany   Role = "company"
	RoleBank      Role = "bank"
	RoleTaxOffice Role = "tax_office"
)

// IsValid checks the role is one of the supported enum values.
func (r Role) IsValid() bool {
	switch r {
	case RoleCompany, RoleBank, RoleTaxOffice:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
