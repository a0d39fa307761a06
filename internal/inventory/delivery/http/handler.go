package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
	"github.com/hubstack/inventory-service/internal/inventory/usecase/command"
	"github.com/hubstack/inventory-service/internal/inventory/usecase/query"
	"github.com/hubstack/inventory-service/pkg/logger"
)

// InventoryHandler handles HTTP requests for stock and transfers
type InventoryHandler struct {
	// Command handlers
	createHandler        *command.CreateStockHandler
	updateHandler        *command.UpdateStockHandler
	setQuantityHandler   *command.SetQuantityHandler
	markOutHandler       *command.MarkOutOfStockHandler
	restockHandler       *command.RestockHandler
	deleteHandler        *command.DeleteStockHandler
	transferHandler      *command.DirectTransferHandler
	createRequestHandler *command.CreateTransferRequestHandler
	decideHandler        *command.DecideTransferRequestHandler

	// Query handlers
	getStockHandler     *query.GetStockHandler
	listByHubHandler    *query.ListByHubHandler
	lowStockHandler     *query.ListLowStockHandler
	listRequestsHandler *query.ListTransferRequestsHandler
	pendingCountHandler *query.PendingTransferCountHandler
	getRequestHandler   *query.GetTransferRequestHandler

	requestCounter   *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
	pendingTransfers prometheus.Gauge
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(stock domain.StockRepository, requests domain.TransferRepository, hubs domain.HubDirectory, events command.EventPublisher) *InventoryHandler {
	// Initialize Prometheus metrics
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_service_requests_total",
			Help: "Total number of requests to inventory service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_service_request_duration_seconds",
			Help:    "Duration of inventory service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	pendingTransfers := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_service_pending_transfer_requests",
			Help: "Number of transfer requests awaiting a decision",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(pendingTransfers)

	return &InventoryHandler{
		createHandler:        command.NewCreateStockHandler(stock),
		updateHandler:        command.NewUpdateStockHandler(stock),
		setQuantityHandler:   command.NewSetQuantityHandler(stock),
		markOutHandler:       command.NewMarkOutOfStockHandler(stock),
		restockHandler:       command.NewRestockHandler(stock),
		deleteHandler:        command.NewDeleteStockHandler(stock),
		transferHandler:      command.NewDirectTransferHandler(stock, hubs, events),
		createRequestHandler: command.NewCreateTransferRequestHandler(requests, stock, hubs),
		decideHandler:        command.NewDecideTransferRequestHandler(requests, events),
		getStockHandler:      query.NewGetStockHandler(stock),
		listByHubHandler:     query.NewListByHubHandler(stock),
		lowStockHandler:      query.NewListLowStockHandler(stock),
		listRequestsHandler:  query.NewListTransferRequestsHandler(requests),
		pendingCountHandler:  query.NewPendingTransferCountHandler(requests),
		getRequestHandler:    query.NewGetTransferRequestHandler(requests),
		requestCounter:       requestCounter,
		requestLatency:       requestLatency,
		pendingTransfers:     pendingTransfers,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *InventoryHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// statusFromError maps domain errors to HTTP status codes
func statusFromError(err error) int {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrSourceNotFound),
		errors.Is(err, domain.ErrDestinationHubNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateSKU),
		errors.Is(err, domain.ErrNotPending),
		errors.As(err, &insufficient):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// CreateStock handles POST /api/stock
func (h *InventoryHandler) CreateStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HubID        string           `json:"hub_id"`
		SKU          string           `json:"sku"`
		Name         string           `json:"name"`
		Quantity     int              `json:"quantity"`
		ReorderLevel int              `json:"reorder_level"`
		UnitPrice    *decimal.Decimal `json:"unit_price"`
		Unit         string           `json:"unit"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateStockCommand{
		HubID:        req.HubID,
		SKU:          req.SKU,
		Name:         req.Name,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		UnitPrice:    req.UnitPrice,
		Unit:         req.Unit,
	}

	record, err := h.createHandler.Handle(cmd)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Stock record created successfully",
		Data:    record,
	})
}

// GetStock handles GET /api/stock/{id}
func (h *InventoryHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	record, err := h.getStockHandler.Handle(query.GetStockQuery{ID: id})
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: record})
}

// UpdateStock handles PUT /api/stock/{id}
func (h *InventoryHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Name         *string          `json:"name"`
		ReorderLevel *int             `json:"reorder_level"`
		UnitPrice    *decimal.Decimal `json:"unit_price"`
		Unit         *string          `json:"unit"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateStockCommand{
		ID:           id,
		Name:         req.Name,
		ReorderLevel: req.ReorderLevel,
		UnitPrice:    req.UnitPrice,
		Unit:         req.Unit,
	}

	record, err := h.updateHandler.Handle(cmd)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock record updated successfully",
		Data:    record,
	})
}

// SetQuantity handles PATCH /api/stock/{id}/quantity
func (h *InventoryHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.setQuantityHandler.Handle(command.SetQuantityCommand{ID: id, Quantity: req.Quantity})
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Quantity updated successfully",
		Data:    record,
	})
}

// Restock handles POST /api/stock/{id}/restock
func (h *InventoryHandler) Restock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Amount int `json:"amount"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.restockHandler.Handle(r.Context(), command.RestockCommand{ID: id, Amount: req.Amount})
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock restocked successfully",
		Data:    record,
	})
}

// MarkOutOfStock handles POST /api/stock/{id}/out-of-stock
func (h *InventoryHandler) MarkOutOfStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	record, err := h.markOutHandler.Handle(command.MarkOutOfStockCommand{ID: id})
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock marked out of stock",
		Data:    record,
	})
}

// DeleteStock handles DELETE /api/stock/{id}
func (h *InventoryHandler) DeleteStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteStockCommand{ID: id}); err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock record deleted successfully",
	})
}

// ListByHub handles GET /api/hubs/{hub_id}/stock
func (h *InventoryHandler) ListByHub(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListByHubQuery{
		HubID:  vars["hub_id"],
		Status: domain.StockStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	}

	records, err := h.listByHubHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Str("hub_id", q.HubID).Msg("Failed to list stock")
		respondError(w, http.StatusInternalServerError, "Failed to list stock")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: records})
}

// ListLowStock handles GET /api/hubs/{hub_id}/stock/low
func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	records, err := h.lowStockHandler.Handle(query.ListLowStockQuery{HubID: vars["hub_id"]})
	if err != nil {
		logger.Logger.Error().Err(err).Str("hub_id", vars["hub_id"]).Msg("Failed to list low stock")
		respondError(w, http.StatusInternalServerError, "Failed to list low stock")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: records})
}

// DirectTransfer handles POST /api/transfers
func (h *InventoryHandler) DirectTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceHubID      string `json:"source_hub_id"`
		DestinationHubID string `json:"destination_hub_id"`
		SKU              string `json:"sku"`
		Quantity         int    `json:"quantity"`
		Notes            string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.DirectTransferCommand{
		SourceHubID:      req.SourceHubID,
		DestinationHubID: req.DestinationHubID,
		SKU:              req.SKU,
		Quantity:         req.Quantity,
		Notes:            req.Notes,
	}

	outcome, err := h.transferHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Transfer completed successfully",
		Data:    outcome,
	})
}

// CreateTransferRequest handles POST /api/transfer-requests
func (h *InventoryHandler) CreateTransferRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceHubID      string `json:"source_hub_id"`
		DestinationHubID string `json:"destination_hub_id"`
		SKU              string `json:"sku"`
		Quantity         int    `json:"quantity"`
		Notes            string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	requestedBy, _ := r.Context().Value(SubjectKey).(string)

	cmd := command.CreateTransferRequestCommand{
		SourceHubID:      req.SourceHubID,
		DestinationHubID: req.DestinationHubID,
		SKU:              req.SKU,
		Quantity:         req.Quantity,
		RequestedBy:      requestedBy,
		Notes:            req.Notes,
	}

	request, err := h.createRequestHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	h.updatePendingTransfersMetric()
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Transfer request created successfully",
		Data:    request,
	})
}

// ListTransferRequests handles GET /api/transfer-requests
func (h *InventoryHandler) ListTransferRequests(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListTransferRequestsQuery{
		Status: domain.TransferStatus(r.URL.Query().Get("status")),
		Limit:  limit,
		Offset: offset,
	}

	requests, err := h.listRequestsHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list transfer requests")
		respondError(w, http.StatusInternalServerError, "Failed to list transfer requests")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: requests})
}

// GetTransferRequest handles GET /api/transfer-requests/{id}.
// Accepts either the numeric id or the request code.
func (h *InventoryHandler) GetTransferRequest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	q := query.GetTransferRequestQuery{}
	if id, err := strconv.ParseUint(vars["id"], 10, 32); err == nil {
		q.ID = uint(id)
	} else {
		q.Code = vars["id"]
	}

	request, err := h.getRequestHandler.Handle(q)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: request})
}

// DecideTransferRequest handles POST /api/transfer-requests/{id}/decision
func (h *InventoryHandler) DecideTransferRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Approve bool   `json:"approve"`
		Notes   string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	approvedBy, _ := r.Context().Value(SubjectKey).(string)

	cmd := command.DecideTransferRequestCommand{
		RequestID:  id,
		Approve:    req.Approve,
		ApprovedBy: approvedBy,
		Notes:      req.Notes,
	}

	outcome, err := h.decideHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	h.updatePendingTransfersMetric()
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Transfer request decided successfully",
		Data:    outcome,
	})
}

// PendingTransferCount handles GET /api/transfer-requests/pending/count
func (h *InventoryHandler) PendingTransferCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.pendingCountHandler.Handle()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to count pending transfer requests")
		respondError(w, http.StatusInternalServerError, "Failed to count pending transfer requests")
		return
	}

	h.pendingTransfers.Set(float64(count))
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]int64{"pending": count},
	})
}

// updatePendingTransfersMetric updates the pending transfers gauge
func (h *InventoryHandler) updatePendingTransfersMetric() {
	count, err := h.pendingCountHandler.Handle()
	if err == nil {
		h.pendingTransfers.Set(float64(count))
	}
}

// parseID extracts a numeric path variable, responding 400 on failure
func parseID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars[name], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	// Stock routes
	router.HandleFunc("/api/stock", h.metricsMiddleware("/api/stock", AuthMiddleware(h.CreateStock))).Methods("POST")
	router.HandleFunc("/api/stock/{id}", h.metricsMiddleware("/api/stock/{id}", h.GetStock)).Methods("GET")
	router.HandleFunc("/api/stock/{id}", h.metricsMiddleware("/api/stock/{id}", AuthMiddleware(h.UpdateStock))).Methods("PUT")
	router.HandleFunc("/api/stock/{id}", h.metricsMiddleware("/api/stock/{id}", AdminMiddleware(h.DeleteStock))).Methods("DELETE")
	router.HandleFunc("/api/stock/{id}/quantity", h.metricsMiddleware("/api/stock/{id}/quantity", AuthMiddleware(h.SetQuantity))).Methods("PATCH")
	router.HandleFunc("/api/stock/{id}/restock", h.metricsMiddleware("/api/stock/{id}/restock", AuthMiddleware(h.Restock))).Methods("POST")
	router.HandleFunc("/api/stock/{id}/out-of-stock", h.metricsMiddleware("/api/stock/{id}/out-of-stock", AuthMiddleware(h.MarkOutOfStock))).Methods("POST")

	// Per-hub views
	router.HandleFunc("/api/hubs/{hub_id}/stock", h.metricsMiddleware("/api/hubs/{hub_id}/stock", h.ListByHub)).Methods("GET")
	router.HandleFunc("/api/hubs/{hub_id}/stock/low", h.metricsMiddleware("/api/hubs/{hub_id}/stock/low", h.ListLowStock)).Methods("GET")

	// Transfers
	router.HandleFunc("/api/transfers", h.metricsMiddleware("/api/transfers", AuthMiddleware(h.DirectTransfer))).Methods("POST")
	router.HandleFunc("/api/transfer-requests", h.metricsMiddleware("/api/transfer-requests", AuthMiddleware(h.CreateTransferRequest))).Methods("POST")
	router.HandleFunc("/api/transfer-requests", h.metricsMiddleware("/api/transfer-requests", h.ListTransferRequests)).Methods("GET")
	router.HandleFunc("/api/transfer-requests/pending/count", h.metricsMiddleware("/api/transfer-requests/pending/count", h.PendingTransferCount)).Methods("GET")
	router.HandleFunc("/api/transfer-requests/{id}", h.metricsMiddleware("/api/transfer-requests/{id}", h.GetTransferRequest)).Methods("GET")
	router.HandleFunc("/api/transfer-requests/{id}/decision", h.metricsMiddleware("/api/transfer-requests/{id}/decision", AdminMiddleware(h.DecideTransferRequest))).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Inventory service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}
