package routes

import (
	"siampay/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathCharges    = "/charges"
	PathReferences = "/references"
)

func addChargeRoutes(rg *gin.RouterGroup, chargeHandler *handlers.ChargeHandler) {
	charges := rg.Group(PathCharges)
	{
		charges.POST("", chargeHandler.CreateCharge)
		charges.GET("/:charge_id", chargeHandler.GetChargeByID)
	}

	references := rg.Group(PathReferences)
	{
		// Merchant-side correlation: latest charge for a reference id.
		references.GET("/:reference_id/charge", chargeHandler.GetLatestChargeByReferenceID)
	}
}
