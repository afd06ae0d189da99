// Package http exposes the dispatch engine over a small JSON API.
// Handlers translate requests into commands and queries, and map the
// application's conflict sentinels onto HTTP statuses and error codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"repairdispatch/internal/core/application/usecases/commands"
	"repairdispatch/internal/core/application/usecases/queries"
	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/offer"
	"repairdispatch/internal/core/domain/model/provider"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Error codes returned in conflict responses. Clients branch on these
// rather than parsing messages.
const (
	codeOfferExpired           = "offer_expired"
	codeAlreadyAssigned        = "already_assigned"
	codeOfferAlreadyResponded  = "offer_already_responded"
	codeOfferNotFound          = "offer_not_found"
	codeRequestNotFound        = "request_not_found"
	codeRequestNotDispatchable = "request_not_dispatchable"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so Bind-then-Validate works on request structs.
type RequestValidator struct {
	validator *validator.Validate
}

// NewRequestValidator creates a validator for incoming request bodies.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validator: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	return v.validator.Struct(i)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	dispatchRequestHandler commands.DispatchRequestCommandHandler
	acceptOfferHandler     commands.AcceptOfferCommandHandler
	declineOfferHandler    commands.DeclineOfferCommandHandler
	expireOffersHandler    commands.ExpireOffersCommandHandler

	// Query handlers
	getProviderOffersHandler     queries.GetProviderOffersQueryHandler
	getUnassignedRequestsHandler queries.GetUnassignedRequestsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	dispatchRequestHandler commands.DispatchRequestCommandHandler,
	acceptOfferHandler commands.AcceptOfferCommandHandler,
	declineOfferHandler commands.DeclineOfferCommandHandler,
	expireOffersHandler commands.ExpireOffersCommandHandler,
	getProviderOffersHandler queries.GetProviderOffersQueryHandler,
	getUnassignedRequestsHandler queries.GetUnassignedRequestsQueryHandler,
) *Server {
	return &Server{
		dispatchRequestHandler:       dispatchRequestHandler,
		acceptOfferHandler:           acceptOfferHandler,
		declineOfferHandler:          declineOfferHandler,
		expireOffersHandler:          expireOffersHandler,
		getProviderOffersHandler:     getProviderOffersHandler,
		getUnassignedRequestsHandler: getUnassignedRequestsHandler,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/dispatch", s.DispatchRequest)
	api.POST("/offers/accept", s.AcceptOffer)
	api.POST("/offers/decline", s.DeclineOffer)
	api.POST("/offers/expire-old", s.ExpireOldOffers)
	api.GET("/providers/:id/offers", s.GetProviderOffers)
	api.GET("/requests/unassigned", s.GetUnassignedRequests)
}

// DispatchRequestBody is the payload for POST /api/v1/dispatch.
type DispatchRequestBody struct {
	RepairRequestID string `json:"repair_request_id" validate:"required,uuid"`
}

// AcceptOfferBody is the payload for POST /api/v1/offers/accept.
type AcceptOfferBody struct {
	JobOfferID   string `json:"job_offer_id" validate:"required,uuid"`
	ProviderID   string `json:"provider_id" validate:"required,uuid"`
	ProviderType string `json:"provider_type" validate:"required"`
}

// DeclineOfferBody is the payload for POST /api/v1/offers/decline.
type DeclineOfferBody struct {
	JobOfferID string `json:"job_offer_id" validate:"required,uuid"`
}

// ErrorResponse carries a machine-readable error code and a human message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DispatchResponse reports the outcome of a dispatch round.
type DispatchResponse struct {
	Success       bool       `json:"success"`
	OffersCreated int        `json:"offers_created"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Message       string     `json:"message,omitempty"`
}

// SuccessResponse is the generic acknowledgement body.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ExpireOldResponse reports how many offers an expiry sweep settled.
type ExpireOldResponse struct {
	Success      bool  `json:"success"`
	ExpiredCount int64 `json:"expired_count"`
}

// ProviderOfferResponse is one open offer as shown to a provider.
type ProviderOfferResponse struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id"`
	DistanceKm float64   `json:"distance_km"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// UnassignedRequestResponse is one request still waiting for a provider.
type UnassignedRequestResponse struct {
	ID        string   `json:"id"`
	Status    string   `json:"status"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// DispatchRequest handles POST /api/v1/dispatch - runs a dispatch round for
// a repair request.
func (s *Server) DispatchRequest(ctx echo.Context) error {
	var body DispatchRequestBody
	if ok, err := bindAndValidate(ctx, &body); !ok {
		return err
	}

	requestID, err := kernel.UUIDFromString(body.RepairRequestID)
	if err != nil {
		return badRequest(ctx, codeRequestNotFound, "invalid repair request id")
	}

	cmd, err := commands.NewDispatchRequestCommand(requestID)
	if err != nil {
		return badRequest(ctx, codeRequestNotFound, err.Error())
	}

	result, err := s.dispatchRequestHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrRequestNotFound):
		return notFound(ctx, codeRequestNotFound)
	case errors.Is(err, commands.ErrRequestNotDispatchable):
		return badRequest(ctx, codeRequestNotDispatchable, err.Error())
	default:
		return internalError(ctx, "failed to dispatch repair request")
	}

	if result.OffersCreated == 0 {
		return ctx.JSON(http.StatusOK, DispatchResponse{
			Success: true,
			Message: "no providers matched",
		})
	}

	expiresAt := result.ExpiresAt
	return ctx.JSON(http.StatusOK, DispatchResponse{
		Success:       true,
		OffersCreated: result.OffersCreated,
		ExpiresAt:     &expiresAt,
	})
}

// AcceptOffer handles POST /api/v1/offers/accept.
func (s *Server) AcceptOffer(ctx echo.Context) error {
	var body AcceptOfferBody
	if ok, err := bindAndValidate(ctx, &body); !ok {
		return err
	}

	offerID, err := kernel.UUIDFromString(body.JobOfferID)
	if err != nil {
		return badRequest(ctx, codeOfferNotFound, "invalid job offer id")
	}

	providerID, err := kernel.UUIDFromString(body.ProviderID)
	if err != nil {
		return badRequest(ctx, codeOfferNotFound, "invalid provider id")
	}

	kind, err := provider.KindFromString(body.ProviderType)
	if err != nil {
		return badRequest(ctx, codeOfferNotFound, "invalid provider type")
	}

	ref, err := provider.NewRef(providerID, kind)
	if err != nil {
		return badRequest(ctx, codeOfferNotFound, err.Error())
	}

	cmd, err := commands.NewAcceptOfferCommand(offerID, ref)
	if err != nil {
		return badRequest(ctx, codeOfferNotFound, err.Error())
	}

	err = s.acceptOfferHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
	case errors.Is(err, commands.ErrOfferNotFound):
		return notFound(ctx, codeOfferNotFound)
	case errors.Is(err, offer.ErrOfferExpired):
		return badRequest(ctx, codeOfferExpired, "job offer has expired")
	case errors.Is(err, commands.ErrRequestAlreadyAssigned):
		return badRequest(ctx, codeAlreadyAssigned, "repair request is already assigned")
	case errors.Is(err, commands.ErrOfferAlreadyResponded):
		return badRequest(ctx, codeOfferAlreadyResponded, "job offer has already been responded to")
	default:
		return internalError(ctx, "failed to accept job offer")
	}
}

// DeclineOffer handles POST /api/v1/offers/decline.
func (s *Server) DeclineOffer(ctx echo.Context) error {
	var body DeclineOfferBody
	if ok, err := bindAndValidate(ctx, &body); !ok {
		return err
	}

	offerID, err := kernel.UUIDFromString(body.JobOfferID)
	if err != nil {
		return badRequest(ctx, codeOfferNotFound, "invalid job offer id")
	}

	cmd, err := commands.NewDeclineOfferCommand(offerID)
	if err != nil {
		return badRequest(ctx, codeOfferNotFound, err.Error())
	}

	err = s.declineOfferHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
	case errors.Is(err, commands.ErrOfferNotFound):
		return notFound(ctx, codeOfferNotFound)
	case errors.Is(err, offer.ErrOfferExpired):
		return badRequest(ctx, codeOfferExpired, "job offer has expired")
	case errors.Is(err, commands.ErrOfferAlreadyResponded):
		return badRequest(ctx, codeOfferAlreadyResponded, "job offer has already been responded to")
	default:
		return internalError(ctx, "failed to decline job offer")
	}
}

// ExpireOldOffers handles POST /api/v1/offers/expire-old - runs the expiry
// sweep on demand. The cron job drives the same command handler.
func (s *Server) ExpireOldOffers(ctx echo.Context) error {
	cmd := commands.NewExpireOffersCommand()

	expired, err := s.expireOffersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return internalError(ctx, "failed to expire job offers")
	}

	return ctx.JSON(http.StatusOK, ExpireOldResponse{Success: true, ExpiredCount: expired})
}

// GetProviderOffers handles GET /api/v1/providers/:id/offers?type= -
// retrieves a provider's open offers.
func (s *Server) GetProviderOffers(ctx echo.Context) error {
	providerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, codeOfferNotFound, "invalid provider id")
	}

	kind, err := provider.KindFromString(ctx.QueryParam("type"))
	if err != nil {
		return badRequest(ctx, codeOfferNotFound, "invalid provider type")
	}

	query, err := queries.NewGetProviderOffersQuery(providerID, kind)
	if err != nil {
		return badRequest(ctx, codeOfferNotFound, err.Error())
	}

	offers, err := s.getProviderOffersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve job offers")
	}

	response := make([]ProviderOfferResponse, len(offers))
	for i, jobOffer := range offers {
		response[i] = ProviderOfferResponse{
			ID:         jobOffer.ID.String(),
			RequestID:  jobOffer.RequestID.String(),
			DistanceKm: jobOffer.DistanceKm,
			ExpiresAt:  jobOffer.ExpiresAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetUnassignedRequests handles GET /api/v1/requests/unassigned.
func (s *Server) GetUnassignedRequests(ctx echo.Context) error {
	query := queries.NewGetUnassignedRequestsQuery()

	requests, err := s.getUnassignedRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve unassigned requests")
	}

	response := make([]UnassignedRequestResponse, len(requests))
	for i, repairRequest := range requests {
		item := UnassignedRequestResponse{
			ID:     repairRequest.ID.String(),
			Status: repairRequest.Status.String(),
		}
		if repairRequest.Location != nil {
			lat := repairRequest.Location.Latitude()
			lon := repairRequest.Location.Longitude()
			item.Latitude = &lat
			item.Longitude = &lon
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}

// bindAndValidate binds and validates the request body. When it returns
// false the 400 response has already been written and the handler must
// return the accompanying error.
func bindAndValidate(ctx echo.Context, body any) (bool, error) {
	if err := ctx.Bind(body); err != nil {
		return false, ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_body",
			Message: "Invalid request body",
		})
	}
	if err := ctx.Validate(body); err != nil {
		return false, ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_body",
			Message: err.Error(),
		})
	}
	return true, nil
}

func badRequest(ctx echo.Context, code, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: code, Message: message})
}

func notFound(ctx echo.Context, code string) error {
	return ctx.JSON(http.StatusNotFound, ErrorResponse{Error: code})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: message,
	})
}
