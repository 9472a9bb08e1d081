package models

// Profile is a projection of the three tracked DBA_PROFILES resource
// limits. Each limit is UNLIMITED, DEFAULT, or a numeric bound.
type Profile struct {
	ProfileName     string   `json:"profile_name"`
	SessionsPerUser string   `json:"sessions_per_user"`
	ConnectTime     string   `json:"connect_time"`
	IdleTime        string   `json:"idle_time"`
	AssignedUsers   []string `json:"assigned_users"`
}
