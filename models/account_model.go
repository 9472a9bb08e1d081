package models

import "time"

// Account is a read-through projection of one DBA_USERS row plus the
// dependent detail queries. It is fetched per request and never cached;
// the catalog remains the authoritative copy.
type Account struct {
	Username            string     `json:"username"`
	AccountStatus       string     `json:"account_status"`
	LockDate            *time.Time `json:"lock_date,omitempty"`
	Created             *time.Time `json:"created,omitempty"`
	DefaultTablespace   string     `json:"default_tablespace"`
	TemporaryTablespace string     `json:"temporary_tablespace"`
	Profile             string     `json:"profile"`

	// Populated by the service layer, each field best-effort.
	Quota      string           `json:"quota,omitempty"`
	Roles      []string         `json:"roles,omitempty"`
	Privileges []PrivilegeGrant `json:"privileges,omitempty"`
	FullName   string           `json:"full_name,omitempty"`
	Email      string           `json:"email,omitempty"`
	Phone      string           `json:"phone,omitempty"`
	Address    string           `json:"address,omitempty"`
}
