package db

import (
	"time"
)

type (
	GormForkedModel struct {
		ID        uint64 `gorm:"primarykey"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	User struct {
		GormForkedModel
		Email     string `gorm:"uniqueIndex;not null"`
		Hash      string `gorm:"not null"`
		FirstName *string
		LastName  *string
		Bookmarks []Bookmark `gorm:"constraint:OnDelete:CASCADE"`
	}

	Bookmark struct {
		GormForkedModel
		Title       string `gorm:"not null"`
		Description *string
		Link        string `gorm:"not null"`
		UserID      uint64 `gorm:"not null;index"`
	}

	// UserPatch holds the profile fields to change; nil fields are left untouched.
	UserPatch struct {
		Email     *string
		FirstName *string
		LastName  *string
	}

	BookmarkPatch struct {
		Title       *string
		Description *string
		Link        *string
	}
)

func (p UserPatch) columns() map[string]interface{} {
	m := map[string]interface{}{}
	if p.Email != nil {
		m["email"] = *p.Email
	}
	if p.FirstName != nil {
		m["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		m["last_name"] = *p.LastName
	}
	return m
}

func (p BookmarkPatch) columns() map[string]interface{} {
	m := map[string]interface{}{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.Link != nil {
		m["link"] = *p.Link
	}
	return m
}
