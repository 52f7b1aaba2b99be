package models

// UserModel is the blog admin. Exactly one is seeded at startup from
// configuration if absent.
type UserModel struct {
	ID           uint   `json:"id"    gorm:"primaryKey;autoIncrement"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-"     gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }
