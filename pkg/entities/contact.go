package entities

import "gorm.io/gorm"

type Contact struct {
	gorm.Model
	Name   string `json:"name" gorm:"type:varchar(255);not null"`
	Number string `json:"number" gorm:"type:varchar(20);uniqueIndex;not null"`
}
