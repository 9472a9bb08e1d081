package models

// ContactProfile maps to the application-owned contact table keyed by
// the uppercase Oracle username.
type ContactProfile struct {
	Username string `gorm:"primaryKey;column:username" json:"username"`
	FullName string `gorm:"column:full_name" json:"full_name"`
	Email    string `gorm:"column:email" json:"email"`
	Phone    string `gorm:"column:phone" json:"phone"`
	Address  string `gorm:"column:address" json:"address"`
}

// TableName returns the database table name for ContactProfile model.
func (ContactProfile) TableName() string {
	return "app_contact_profile"
}
