package routes

import (
	"log"
	"os"
	"strconv"
	"strings"

	_ "siampay/docs" // swag-generated swagger spec
	"siampay/internal/adapter/http/handlers"
	repository2 "siampay/internal/adapter/persistence/repository"
	"siampay/internal/infrastructure/database"
	"siampay/internal/infrastructure/payments"
	"siampay/internal/usecase"
	"siampay/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	chargeRepo := repository2.NewChargeDynamoRepository(ddb)
	chargeUseCase := usecase.NewChargeUseCase(chargeRepo, newChargeGateway())

	chargeHandler := handlers.NewChargeHandler(chargeUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addChargeRoutes(v1, chargeHandler)
}

// newChargeGateway picks the payment provider from PAYMENT_PROVIDER
// (default: gupay). A misconfigured gateway leaves the use case without one;
// charge creation then fails while the read paths keep working.
func newChargeGateway() interfaces.IChargeGateway {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PAYMENT_PROVIDER"))) {
	case "mercadopago":
		mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
		if err != nil {
			log.Printf("Mercado Pago gateway not configured: %v", err)
			return nil
		}
		return mpGateway
	default:
		gpGateway, err := payments.NewGuPayGateway(
			os.Getenv("GUPAY_API_KEY"),
			os.Getenv("GUPAY_SERVICE_ID"),
			os.Getenv("GUPAY_BASE_URL"),
		)
		if err != nil {
			log.Printf("GuPay gateway not configured: %v", err)
			return nil
		}
		return gpGateway
	}
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
