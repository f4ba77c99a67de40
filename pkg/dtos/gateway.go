package dtos

type SendMessageDTO struct {
	To      string `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type StatusDTO struct {
	Connected bool `json:"connected"`
}

type QRCodeDTO struct {
	QR    string `json:"qr"`
	QRPNG string `json:"qr_png,omitempty"`
}

type ChatbotToggleDTO struct {
	Status string `json:"status"`
	Active bool   `json:"active"`
}
