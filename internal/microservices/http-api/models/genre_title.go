package models

// GenreTitle is the explicit join row between titles and genres.
type GenreTitle struct {
	TitleID int64 `json:"title_id" gorm:"primaryKey"`
	GenreID int64 `json:"genre_id" gorm:"primaryKey;index"`
}

func (GenreTitle) TableName() string {
	return "genre_titles"
}
