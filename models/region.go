package models

// Region is a geographic region an article can be tagged with.
// Code is the business key used for lookups. Entries written without a known id
// always create a new row, so several regions may share a code.
type Region struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code string `gorm:"size:255;not null;index" json:"code"`
	Name string `gorm:"size:255;not null" json:"name"`
}

// TableName explicitly sets the table name for GORM.
func (Region) TableName() string {
	return "regions"
}
