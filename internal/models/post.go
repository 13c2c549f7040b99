package models

// Post is a blog entry. Author holds the username of the creating user by
// value; ownership checks compare it against the session username in the
// service layer rather than through a schema-level foreign key.
type Post struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Title   string `json:"title" gorm:"type:varchar(255)"`
	Content string `json:"content" gorm:"type:text"`
	Author  string `json:"author" gorm:"type:varchar(15);index"`
}
