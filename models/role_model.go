package models

// Role is a projection of one DBA_ROLES row with its granted privileges
// and member accounts.
type Role struct {
	RoleName      string   `json:"role_name"`
	HasPassword   bool     `json:"has_password"`
	Privileges    []string `json:"privileges"`
	AssignedUsers []string `json:"assigned_users"`
}
