package models

// Grant kinds reported by the catalog projections.
const (
	GrantDirect = "DIRECT"
	GrantRole   = "ROLE"
	GrantObject = "OBJECT"
)

// PrivilegeGrant is one privilege association: a system privilege held
// directly or through a role, or an object privilege on a named object.
// DBA_SYS_PRIVS carries no grantor, so Grantor is empty for system grants.
type PrivilegeGrant struct {
	Privilege   string `json:"privilege"`
	Grantee     string `json:"grantee"`
	Grantor     string `json:"grantor,omitempty"`
	AdminOption bool   `json:"admin_option"`
	Kind        string `json:"kind"`
	RoleName    string `json:"role_name,omitempty"`
	ObjectName  string `json:"object_name,omitempty"`
}
