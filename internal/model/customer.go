package model

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null"`
	Email   string `json:"email" gorm:"uniqueIndex;not null"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}
