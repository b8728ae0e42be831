package entities

type EmailTemplate struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Subject string `json:"subject" gorm:"not null"`
	Body    string `json:"body" gorm:"type:text;not null"`
}
