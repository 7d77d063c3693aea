package movie

import (
	"time"
)

// Movie is a film saved by a user. OwnerID is set at creation and never
// changes; every mutation must come from the owner.
type Movie struct {
	ID          string `gorm:"primaryKey;type:text"`
	OwnerID     string `gorm:"index;not null;type:text"`
	Country     string `gorm:"not null;type:text"`
	Director    string `gorm:"not null;type:text"`
	Duration    int    `gorm:"not null"`
	Year        string `gorm:"not null;type:text"`
	Description string `gorm:"not null;type:text"`
	Image       string `gorm:"not null;type:text"`
	Trailer     string `gorm:"not null;type:text"`
	Thumbnail   string `gorm:"not null;type:text"`
	MovieID     string `gorm:"not null;type:text"`
	NameRU      string `gorm:"not null;type:text"`
	NameEN      string `gorm:"not null;type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for the Movie entity.
func (Movie) TableName() string {
	return "movies"
}
