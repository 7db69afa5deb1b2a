package model

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint           `gorm:"primaryKey" json:"_id"`
	UserID    uint           `gorm:"not null;index" json:"user"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	Name      string         `gorm:"size:128" json:"name"`
	Avatar    string         `gorm:"size:255" json:"avatar"`
	Comments  []CommentEntry `gorm:"type:json;serializer:json" json:"comments"`
	CreatedAt time.Time      `gorm:"index" json:"date"`
}

type CommentEntry struct {
	ID        string    `json:"_id"`
	UserID    uint      `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

func (c CommentEntry) EntryID() string { return c.ID }

func (p *Post) AddComment(c CommentEntry) {
	p.Comments = prepend(p.Comments, c)
}

// FindComment returns the comment with the id, or nil.
func (p *Post) FindComment(id string) *CommentEntry {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

func (p *Post) RemoveComment(id string) bool {
	var ok bool
	p.Comments, ok = removeByID(p.Comments, id)
	return ok
}

func (p *Post) AfterFind(*gorm.DB) error {
	if p.Comments == nil {
		p.Comments = []CommentEntry{}
	}
	return nil
}
