package models

type Category struct {
	ID   int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;not null"`
	Slug string `json:"slug" gorm:"size:50;not null;uniqueIndex"`
}

func (Category) TableName() string {
	return "categories"
}
