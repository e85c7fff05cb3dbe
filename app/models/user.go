package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Email        string    `gorm:"size:100;not null;uniqueIndex" json:"email" validate:"required,email"`
	DisplayName  string    `gorm:"size:100" json:"displayName"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	return checkStruct("user", u)
}

func (u *User) AfterFind(tx *gorm.DB) error {
	return checkStruct("user", u)
}
