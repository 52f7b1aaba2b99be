package models

// PostViewModel counts page views per post. The row is created on the first
// increment; view_count only ever goes up.
type PostViewModel struct {
	PostID    uint `json:"post_id"    gorm:"primaryKey"`
	ViewCount int  `json:"view_count" gorm:"default:0"`
}

func (PostViewModel) TableName() string { return "post_views" }
