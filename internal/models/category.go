package models

// CategoryModel groups posts; linked many-to-many via post_categories.
type CategoryModel struct {
	ID   uint   `json:"id"   gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (CategoryModel) TableName() string { return "categories" }
