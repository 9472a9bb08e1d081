package models

// AppLoginUser maps to the application-owned credential table. The hash
// is a bcrypt digest of the application password, which is independent
// of the Oracle account's own password.
type AppLoginUser struct {
	Username     string `gorm:"primaryKey;column:username" json:"username"`
	PasswordHash string `gorm:"column:password_hash" json:"-"`
}

// TableName returns the database table name for AppLoginUser model.
func (AppLoginUser) TableName() string {
	return "app_login_user"
}
