package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Inventory Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateStock godoc
// @Summary Create stock record
// @Description Stock a SKU at a hub
// @Tags Stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{hub_id=string,sku=string,name=string,quantity=int,reorder_level=int,unit_price=number,unit=string} true "Stock data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/stock [post]
func (h *InventoryHandler) CreateStockDoc() {}

// GetStock godoc
// @Summary Get stock record by ID
// @Description Get a specific stock record by its ID
// @Tags Stock
// @Produce json
// @Param id path int true "Stock record ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/stock/{id} [get]
func (h *InventoryHandler) GetStockDoc() {}

// SetQuantity godoc
// @Summary Set stock quantity
// @Description Set the absolute quantity of a stock record; status is rederived
// @Tags Stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Stock record ID"
// @Param request body object{quantity=int} true "Quantity data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/stock/{id}/quantity [patch]
func (h *InventoryHandler) SetQuantityDoc() {}

// ListByHub godoc
// @Summary List stock at a hub
// @Description List stock records at a hub with optional status filter and search
// @Tags Stock
// @Produce json
// @Param hub_id path string true "Hub ID"
// @Param status query string false "Status filter"
// @Param search query string false "Name or SKU search"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/hubs/{hub_id}/stock [get]
func (h *InventoryHandler) ListByHubDoc() {}

// ListLowStock godoc
// @Summary List low stock at a hub
// @Description List stock records with quantity below reorder level
// @Tags Stock
// @Produce json
// @Param hub_id path string true "Hub ID"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/hubs/{hub_id}/stock/low [get]
func (h *InventoryHandler) ListLowStockDoc() {}

// DirectTransfer godoc
// @Summary Transfer stock between hubs
// @Description Atomically debit the source hub and credit the destination hub
// @Tags Transfers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{source_hub_id=string,destination_hub_id=string,sku=string,quantity=int,notes=string} true "Transfer data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/transfers [post]
func (h *InventoryHandler) DirectTransferDoc() {}

// CreateTransferRequest godoc
// @Summary Create transfer request
// @Description Queue an approval-gated transfer between hubs
// @Tags Transfers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{source_hub_id=string,destination_hub_id=string,sku=string,quantity=int,notes=string} true "Request data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/transfer-requests [post]
func (h *InventoryHandler) CreateTransferRequestDoc() {}

// DecideTransferRequest godoc
// @Summary Decide transfer request
// @Description Approve or reject a pending transfer request (Admin only)
// @Tags Transfers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param request body object{approve=bool,notes=string} true "Decision data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/transfer-requests/{id}/decision [post]
func (h *InventoryHandler) DecideTransferRequestDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *InventoryHandler) HealthCheckDoc() {}
