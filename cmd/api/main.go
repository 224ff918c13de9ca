package main

import (
	_ "siampay/docs"
	"siampay/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           SiamPay Charge Service API
// @version         1.0
// @description     Charge service for Thai payment methods (TrueMoney, PromptPay, internet banking) backed by GuPay and DynamoDB.

// @contact.name   API Support

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
