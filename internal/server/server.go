package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/iwvelando/dealer-finance/internal/catalog"
	"github.com/iwvelando/dealer-finance/internal/domain"
	"github.com/iwvelando/dealer-finance/internal/deals"
	"github.com/iwvelando/dealer-finance/internal/quote"
	"github.com/iwvelando/dealer-finance/internal/rules"
	"github.com/iwvelando/dealer-finance/pkg/amortization"
	"github.com/iwvelando/dealer-finance/pkg/constants"
	"github.com/iwvelando/dealer-finance/pkg/finance"
	"go.uber.org/zap"
)

// Services are the domain services exposed over HTTP.
type Services struct {
	Catalog *catalog.Service
	Rules   *rules.Service
	Deals   *deals.Service
	Policy  finance.Policy
}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	catalog     *catalog.Service
	rules       *rules.Service
	deals       *deals.Service
	policy      finance.Policy
}

// NewHandler constructs the HTTP handler that serves the finance, catalog,
// rules and deals API.
func NewHandler(logger *zap.Logger, services Services, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		catalog:     services.Catalog,
		rules:       services.Rules,
		deals:       services.Deals,
		policy:      services.Policy.Normalize(),
	}

	mux := http.NewServeMux()

	// Calculators
	mux.HandleFunc("POST /api/finance/calculate", h.handleCalculate)
	mux.HandleFunc("POST /api/finance/schedule", h.handleSchedule)
	mux.HandleFunc("POST /api/finance/profit", h.handleProfit)
	mux.HandleFunc("POST /api/finance/trader", h.handleTrader)

	// Quote configurations
	mux.HandleFunc("POST /api/quotes", h.handleQuotes)
	mux.HandleFunc("POST /api/quotes/export", h.handleQuotesExport)

	// Car catalog
	mux.HandleFunc("GET /api/cars", h.handleListCars)
	mux.HandleFunc("POST /api/cars", h.handleAddCar)
	mux.HandleFunc("GET /api/cars/{id}", h.handleGetCar)
	mux.HandleFunc("PUT /api/cars/{id}", h.handleUpdateCar)
	mux.HandleFunc("DELETE /api/cars/{id}", h.handleRemoveCar)

	// Finance rules
	mux.HandleFunc("GET /api/rules", h.handleListRules)
	mux.HandleFunc("POST /api/rules", h.handleCreateRule)
	mux.HandleFunc("GET /api/rules/{id}", h.handleGetRule)
	mux.HandleFunc("PUT /api/rules/{id}", h.handleUpdateRule)
	mux.HandleFunc("DELETE /api/rules/{id}", h.handleDeleteRule)

	// Trader deals
	mux.HandleFunc("GET /api/deals", h.handleListDeals)
	mux.HandleFunc("POST /api/deals", h.handleCreateDeal)
	mux.HandleFunc("GET /api/deals/stats", h.handleDealStats)
	mux.HandleFunc("GET /api/deals/{id}", h.handleGetDeal)
	mux.HandleFunc("PUT /api/deals/{id}", h.handleUpdateDeal)
	mux.HandleFunc("DELETE /api/deals/{id}", h.handleDeleteDeal)

	// Version endpoint for client metadata
	mux.HandleFunc("GET /api/version", h.handleVersion)

	return mux
}

type scheduleRequest struct {
	amortization.LoanInput
	StartDate string `json:"startDate,omitempty"`
}

type scheduleResponse struct {
	Loan     amortization.LoanResult  `json:"loan"`
	Schedule []quote.ScheduledPayment `json:"schedule"`
}

type profitRequest struct {
	finance.ProfitInput
	RuleID string             `json:"ruleId,omitempty"`
	Rule   *finance.RuleTerms `json:"rule,omitempty"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	var input finance.CalculatorInput
	if !h.decodeJSON(w, r, &input, op) {
		return
	}

	result, err := finance.Calculate(input, h.policy)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	var req scheduleRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	loan, err := amortization.Compute(req.LoanInput)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	schedule, err := quote.Schedule(req.LoanInput, req.StartDate)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, scheduleResponse{Loan: loan, Schedule: schedule})
}

func (h *handler) handleProfit(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProfit"
	var req profitRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	var (
		result finance.ProfitResult
		err    error
	)
	switch {
	case req.RuleID != "":
		id, parseErr := uuid.Parse(req.RuleID)
		if parseErr != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid ruleId: %v", parseErr), op)
			return
		}
		result, err = h.rules.Profit(r.Context(), id, req.ProfitInput)
	case req.Rule != nil:
		result, err = finance.CalculateProfit(req.ProfitInput, *req.Rule)
	default:
		h.respondErrorWithOp(w, http.StatusBadRequest, "either ruleId or rule is required", op)
		return
	}
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleTrader(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTrader"
	var input finance.TraderInput
	if !h.decodeJSON(w, r, &input, op) {
		return
	}

	result, err := h.deals.Quote(input)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleListCars(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListCars"
	filter, err := parseCarFilter(r.URL.Query())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	cars, err := h.catalog.Filter(r.Context(), filter)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, cars)
}

func (h *handler) handleAddCar(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAddCar"
	var car domain.Car
	if !h.decodeJSON(w, r, &car, op) {
		return
	}

	added, err := h.catalog.Add(r.Context(), car)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusCreated, added)
}

func (h *handler) handleGetCar(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGetCar"
	id, ok := h.pathID(w, r, op)
	if !ok {
		return
	}

	car, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, car)
}

func (h *handler) handleUpdateCar(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpdateCar"
	id, ok := h.pathID(w, r, op)
	if !ok {
		return
	}
	var car domain.Car
	if !h.decodeJSON(w, r, &car, op) {
		return
	}

	updated, err := h.catalog.Update(r.Context(), id, car)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *handler) handleRemoveCar(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRemoveCar"
	id, ok := h.pathID(w, r, op)
	if !ok {
		return
	}

	if err := h.catalog.Remove(r.Context(), id); err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleListRules(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListRules"
	var (
		list []domain.FinanceRule
		err  error
	)
	if coerceBool(r.URL.Query().Get("active")) {
		list, err = h.rules.Active(r.Context(), domain.Category(r.URL.Query().Get("carType")))
	} else {
		list, err = h.rules.List(r.Context())
	}
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *handler) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCreateRule"
	var rule domain.FinanceRule
	if !h.decodeJSON(w, r, &rule, op) {
		return
	}

	created, err := h.rules.Create(r.Context(), rule)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *handler) handleGetRule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGetRule"
	id, ok := h.pathID(w, r, op)
	if !ok {
		return
	}

	rule, err := h.rules.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, rule)
}

func (h *handler) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpdateRule"
	id, ok := h.pathID(w, r, op)
	if !ok {
		return
	}
	var rule domain.FinanceRule
	if !h.decodeJSON(w, r, &rule, op) {
		return
	}

	updated, err := h.rules.Update(r.Context(), id, rule)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *handler) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeleteRule"
	id, ok := h.pathID(w, r, op)
	if !ok {
		return
	}

	if err := h.rules.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleListDeals(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListDeals"
	list, err := h.deals.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := make([]domain.TraderDeal, 0, len(list))
		for _, deal := range list {
			if string(deal.Status) == status {
				filtered = append(filtered, deal)
			}
		}
		list = filtered
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *handler) handleCreateDeal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCreateDeal"
	var deal domain.TraderDeal
	if !h.decodeJSON(w, r, &deal, op) {
		return
	}

	created, err := h.deals.Create(r.Context(), deal)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *handler) handleDealStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deals.Statistics(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "server.handleDealStats")
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *handler) handleGetDeal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGetDeal"
	id, ok := h.pathID(w, r, op)
	if !ok {
		return
	}

	deal, err := h.deals.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, deal)
}

func (h *handler) handleUpdateDeal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpdateDeal"
	id, ok := h.pathID(w, r, op)
	if !ok {
		return
	}
	var deal domain.TraderDeal
	if !h.decodeJSON(w, r, &deal, op) {
		return
	}

	updated, err := h.deals.Update(r.Context(), id, deal)
	if err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *handler) handleDeleteDeal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeleteDeal"
	id, ok := h.pathID(w, r, op)
	if !ok {
		return
	}

	if err := h.deals.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err, op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseCarFilter reads the catalog filter from query parameters.
func parseCarFilter(query url.Values) (catalog.Filter, error) {
	filter := catalog.Filter{
		Category:  domain.Category(query.Get("category")),
		PriceBand: query.Get("price"),
		Query:     query.Get("q"),
	}

	var err error
	if filter.MinPrice, err = floatParam(query, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = floatParam(query, "maxPrice"); err != nil {
		return filter, err
	}
	if filter.MinYear, err = intParam(query, "minYear"); err != nil {
		return filter, err
	}
	if filter.MaxYear, err = intParam(query, "maxYear"); err != nil {
		return filter, err
	}
	return filter, nil
}

func floatParam(query url.Values, name string) (float64, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return value, nil
}

func intParam(query url.Values, name string) (int, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return value, nil
}

func (h *handler) pathID(w http.ResponseWriter, r *http.Request, op string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid id %q", r.PathValue("id")), op)
		return uuid.Nil, false
	}
	return id, true
}

// decodeJSON reads the request body into dst, responding with 413 when the
// body is over the limit and 400 when it is not valid JSON.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var violation *finance.RuleViolationError
	switch {
	case errors.Is(err, amortization.ErrInvalidInput),
		errors.As(err, &violation),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, catalog.ErrInvalidFilter),
		errors.Is(err, rules.ErrRuleInactive):
		return http.StatusUnprocessableEntity
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, rules.ErrNotFound),
		errors.Is(err, deals.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (h *handler) respondServiceError(w http.ResponseWriter, err error, op string) {
	h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Warn("request rejected", fields...)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeJSONResponse(w, h.logger, status, payload)
}

func writeJSONResponse(w http.ResponseWriter, logger *zap.Logger, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceBool(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	parsed, err := strconv.ParseBool(trimmed)
	return err == nil && parsed
}
