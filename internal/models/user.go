package models

// User represents a registered account. The Password field always holds the
// bcrypt hash of the submitted password, never the plaintext.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"type:varchar(25)"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(15)"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password string `gorm:"type:varchar(255)"` // No json tag for security
}
