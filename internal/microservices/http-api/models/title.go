package models

type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:50;not null;index"`
	Year        int     `json:"year" gorm:"not null"`
	Description *string `json:"description" gorm:"type:text"`
	CategoryID  *int64  `json:"-" gorm:"index"`

	// Rating is the mean review score, filled in by the read queries only.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`

	// association
	Category *Category `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genre" gorm:"many2many:genre_titles;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}
