package entities

// RestaurantSetting is a single key/value pair. Values are stored as text and
// parsed by whoever reads them.
type RestaurantSetting struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Key   string `json:"setting" gorm:"column:setting;type:varchar(100);uniqueIndex;not null"`
	Value string `json:"value" gorm:"type:text;not null"`
}
