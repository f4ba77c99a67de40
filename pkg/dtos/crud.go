package dtos

type AutoReplyDTO struct {
	Keyword string `json:"keyword" binding:"required"`
	Reply   string `json:"reply" binding:"required"`
}

type ContactDTO struct {
	Name   string `json:"name" binding:"required"`
	Number string `json:"number" binding:"required"`
}

type UpdateMessageDTO struct {
	Message string `json:"message" binding:"required"`
}
