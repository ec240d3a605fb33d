package models

import "time"

type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid;not null;uniqueIndex:uniq_review_author_title"`
	TitleID   int64     `json:"title_id" gorm:"not null;uniqueIndex:uniq_review_author_title;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Score     int       `json:"score" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Author User  `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Title  Title `json:"title,omitempty" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
