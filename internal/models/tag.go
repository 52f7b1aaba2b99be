package models

// TagModel labels posts; linked many-to-many via post_tags.
type TagModel struct {
	ID   uint   `json:"id"   gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (TagModel) TableName() string { return "tags" }
