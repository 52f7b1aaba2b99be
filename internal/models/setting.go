package models

// SettingModel is a key-value bag for site configuration.
// Value is the JSON encoding of whatever the admin UI stored.
type SettingModel struct {
	Key   string `json:"key"   gorm:"primaryKey"`
	Value string `json:"value" gorm:"type:text"`
}

func (SettingModel) TableName() string { return "settings" }
