package entities

import "gorm.io/gorm"

// AutoReply maps a keyword to a canned reply. Keywords are stored lowercased
// and trimmed; the router looks them up with the normalized inbound body.
type AutoReply struct {
	gorm.Model
	Keyword string `json:"keyword" gorm:"type:varchar(255);uniqueIndex;not null"`
	Reply   string `json:"reply" gorm:"type:text;not null"`
}
