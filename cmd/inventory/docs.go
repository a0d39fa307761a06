package main

// @title Inventory Service API
// @version 1.0
// @description Multi-hub stock accounting and transfer service with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/hubstack/inventory-service
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/hubstack/inventory-service/blob/main/LICENSE

// @host localhost:8082
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Stock
// @tag.description Per-hub stock record endpoints

// @tag.name Transfers
// @tag.description Direct transfers and approval-gated transfer requests

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
