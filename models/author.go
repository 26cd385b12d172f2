package models

// Author represents an article author. It corresponds to the 'authors' table.
type Author struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string `gorm:"size:255;not null" json:"first_name"`
	LastName  string `gorm:"size:255;not null" json:"last_name"`
}

// TableName explicitly sets the table name for GORM.
func (Author) TableName() string {
	return "authors"
}
