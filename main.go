package main

import (
	"github.com/wagateway/app/cmd"
)

// @title WhatsApp Gateway API
// @version 1.0
// @description Single-account WhatsApp gateway with message history, contacts and keyword auto-replies.

// @host  localhost:8000
// @BasePath /api/v1

func main() {
	cmd.StartApp()
}
