package models

import (
	"strings"

	"yatube/utils"

	"gorm.io/gorm"
)

type User struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `json:"-"`
	UpdatedAt int64  `json:"-"`
	Username  string `gorm:"type:varchar(150);not null;index:uniq_username,unique" json:"username"`
	Name      string `gorm:"type:varchar(150)" json:"name"`
	Email     string `gorm:"type:varchar(254)" json:"-"`
	Password  string `gorm:"type:varchar(128)" json:"-"`
	PassSalt  string `gorm:"type:varchar(200)" json:"-"`
	IsAdmin   bool   `json:"-"`
}

const (
	saltSize = 60
)

func UserCreate(tx *gorm.DB, username, name, email, plainTextPassword string) (u User, err error) {
	u.Username = strings.TrimSpace(username)
	u.Name = name
	u.Email = email
	u.SetPassword(plainTextPassword)
	return u, tx.Create(&u).Error
}

func (u *User) SetPassword(plainTextPassword string) {
	u.PassSalt = utils.RandSalt(saltSize)
	u.Password = utils.Sha512String(plainTextPassword + u.PassSalt)
}

func (u *User) CheckPassword(plainTextPassword string) bool {
	return u.Password != "" && u.Password == utils.Sha512String(plainTextPassword+u.PassSalt)
}

func UserLogin(tx *gorm.DB, username, plainTextPassword string) (u User, success bool) {
	result := tx.First(&u, "username = ?", username)
	if result.Error != nil {
		return User{}, false
	}
	if !u.CheckPassword(plainTextPassword) {
		return User{}, false
	}
	return u, true
}

// IsAuthenticated works on nil too, a nil *User is the anonymous viewer
func (u *User) IsAuthenticated() bool {
	return u != nil && u.ID != 0
}

// DisplayName falls back to the username when no full name was given
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
