package model

import "time"

type User struct {
	UserID    string    `gorm:"column:user_id;primaryKey;size:36" json:"user_id"`
	UserName  string    `gorm:"column:user_name;size:64;not null;uniqueIndex" json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
