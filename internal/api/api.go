package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	models "github.com/chrisdamba/babysitter/internal"
	"github.com/chrisdamba/babysitter/internal/middleware"
	"github.com/chrisdamba/babysitter/internal/ports"
	"github.com/chrisdamba/babysitter/internal/utils"
)

const maxListLimit = 100

type Handler struct {
	service    ports.BookingService
	authorizer ports.Authorizer
	catalog    models.StatusCatalog
	clock      ports.Clock
	logger     *slog.Logger
}

func NewHandler(service ports.BookingService, authorizer ports.Authorizer, catalog models.StatusCatalog, clock ports.Clock, logger *slog.Logger) *Handler {
	return &Handler{
		service:    service,
		authorizer: authorizer,
		catalog:    catalog,
		clock:      clock,
		logger:     logger,
	}
}

// Register mounts the booking routes on mux under prefix, e.g. "/v1".
func (h *Handler) Register(mux *http.ServeMux, prefix string) {
	jsonOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return utils.AllowedContentTypes(next, string(utils.ContentTypeJSON))
	}

	mux.HandleFunc("POST "+prefix+"/bookings", jsonOnly(h.createBooking))
	mux.HandleFunc("GET "+prefix+"/bookings", h.listBookings)
	mux.HandleFunc("GET "+prefix+"/bookings/{id}", h.getBooking)
	mux.HandleFunc("PATCH "+prefix+"/bookings/{id}", jsonOnly(h.updateBooking))
	mux.HandleFunc("PUT "+prefix+"/bookings/{id}/status", jsonOnly(h.changeStatus))
	mux.HandleFunc("PUT "+prefix+"/bookings/{id}/handler", jsonOnly(h.assignHandler))
	mux.HandleFunc("POST "+prefix+"/bookings/{id}/care-recipients", jsonOnly(h.addCareRecipient))
	mux.HandleFunc("GET "+prefix+"/care-recipients/{id}", h.getCareRecipient)
	mux.HandleFunc("PATCH "+prefix+"/care-recipients/{id}", jsonOnly(h.updateCareRecipient))
	mux.HandleFunc("DELETE "+prefix+"/care-recipients/{id}", h.removeCareRecipient)
	mux.HandleFunc("GET "+prefix+"/statuses", h.listStatuses)
}

func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request) {
	var bookingRequest models.BookingRequest
	if !h.decode(w, r, &bookingRequest) {
		return
	}

	var requesterID *int64
	if actor := middleware.ActorFrom(r.Context()); actor != nil {
		id := actor.UserID
		requesterID = &id
	}

	booking, err := h.service.CreateBooking(r.Context(), &bookingRequest, requesterID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	utils.RenderResponse(r, w, http.StatusCreated, h.bookingResponse(booking))
}

func (h *Handler) listBookings(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, ports.ActionList, nil) {
		return
	}

	query := r.URL.Query()
	req := models.GetBookingsRequest{
		Cursor: query.Get("cursor"),
		Status: models.Status(query.Get("status")),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			ae := utils.NewBadRequest("limit must be between 1 and 100")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		req.Limit = limit
	}

	page, err := h.service.AllBookings(r.Context(), req)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	response := models.AllBookingsResponse{
		Bookings: make([]models.BookingResponse, len(page.Bookings)),
		Limit:    page.Limit,
		Cursor:   page.Cursor,
	}
	for i := range page.Bookings {
		response.Bookings[i] = h.bookingResponse(&page.Bookings[i])
	}
	utils.RenderResponse(r, w, http.StatusOK, response)
}

func (h *Handler) getBooking(w http.ResponseWriter, r *http.Request) {
	booking, ok := h.loadBooking(w, r, ports.ActionView)
	if !ok {
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, h.bookingResponse(booking))
}

func (h *Handler) updateBooking(w http.ResponseWriter, r *http.Request) {
	current, ok := h.loadBooking(w, r, ports.ActionUpdate)
	if !ok {
		return
	}

	var update models.BookingUpdate
	if !h.decode(w, r, &update) {
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), current.ID, &update)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, h.bookingResponse(booking))
}

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request) {
	current, ok := h.loadBooking(w, r, ports.ActionUpdateStatus)
	if !ok {
		return
	}

	var req models.StatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	booking, err := h.service.ChangeStatus(r.Context(), current.ID, models.Status(req.Status))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, h.bookingResponse(booking))
}

func (h *Handler) assignHandler(w http.ResponseWriter, r *http.Request) {
	current, ok := h.loadBooking(w, r, ports.ActionAssign)
	if !ok {
		return
	}

	var req models.HandlerRequest
	if !h.decode(w, r, &req) {
		return
	}

	booking, err := h.service.AssignHandler(r.Context(), current.ID, req.HandlerID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, h.bookingResponse(booking))
}

func (h *Handler) addCareRecipient(w http.ResponseWriter, r *http.Request) {
	booking, ok := h.loadBooking(w, r, ports.ActionUpdate)
	if !ok {
		return
	}

	var req models.CareRecipientRequest
	if !h.decode(w, r, &req) {
		return
	}

	recipient, err := h.service.AddCareRecipient(r.Context(), booking.ID, &req)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	utils.RenderResponse(r, w, http.StatusCreated, h.careRecipientResponse(recipient))
}

func (h *Handler) getCareRecipient(w http.ResponseWriter, r *http.Request) {
	recipient, ok := h.loadCareRecipient(w, r, ports.ActionView)
	if !ok {
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, h.careRecipientResponse(recipient))
}

func (h *Handler) updateCareRecipient(w http.ResponseWriter, r *http.Request) {
	current, ok := h.loadCareRecipient(w, r, ports.ActionUpdate)
	if !ok {
		return
	}

	var update models.CareRecipientUpdate
	if !h.decode(w, r, &update) {
		return
	}

	recipient, err := h.service.UpdateCareRecipient(r.Context(), current.ID, &update)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, h.careRecipientResponse(recipient))
}

func (h *Handler) removeCareRecipient(w http.ResponseWriter, r *http.Request) {
	recipient, ok := h.loadCareRecipient(w, r, ports.ActionDelete)
	if !ok {
		return
	}

	if err := h.service.RemoveCareRecipient(r.Context(), recipient.ID); err != nil {
		h.renderError(w, r, err)
		return
	}
	utils.RenderResponse(r, w, http.StatusNoContent, nil)
}

func (h *Handler) listStatuses(w http.ResponseWriter, r *http.Request) {
	utils.RenderResponse(r, w, http.StatusOK, StatusesResponse{Statuses: h.catalog.All()})
}

// loadBooking resolves {id}, fetches the booking and checks the actor may
// perform action on it. It renders the failure and returns false otherwise.
func (h *Handler) loadBooking(w http.ResponseWriter, r *http.Request, action ports.Action) (*models.Booking, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, false
	}
	if middleware.ActorFrom(r.Context()) == nil {
		h.authorize(w, r, action, nil)
		return nil, false
	}

	booking, err := h.service.GetBooking(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return nil, false
	}
	if !h.authorize(w, r, action, booking) {
		return nil, false
	}
	return booking, true
}

// loadCareRecipient authorizes against the booking that owns the recipient.
func (h *Handler) loadCareRecipient(w http.ResponseWriter, r *http.Request, action ports.Action) (*models.CareRecipient, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, false
	}
	if middleware.ActorFrom(r.Context()) == nil {
		h.authorize(w, r, action, nil)
		return nil, false
	}

	recipient, err := h.service.GetCareRecipient(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return nil, false
	}
	booking, err := h.service.GetBooking(r.Context(), recipient.BookingID)
	if err != nil {
		h.renderError(w, r, err)
		return nil, false
	}
	if !h.authorize(w, r, action, booking) {
		return nil, false
	}
	return recipient, true
}

func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, action ports.Action, booking *models.Booking) bool {
	actor := middleware.ActorFrom(r.Context())
	if actor == nil {
		ae := utils.NewUnauthorized("Unauthenticated.")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return false
	}
	if !h.authorizer.Can(actor, action, booking) {
		ae := utils.NewForbidden("This action is unauthorized.")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return false
	}
	return true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := utils.JsonDecodeBody(r, dst); err != nil {
		ae := utils.NewBadRequest("error json decoding body")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return false
	}
	return true
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	ae := getApiError(err)
	if ae.StatusCode == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("request_id", middleware.RequestIDFrom(r.Context())),
			slog.String("error", err.Error()))
	}
	utils.RenderResponse(r, w, ae.StatusCode, ae)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		ae := utils.NewBadRequest("invalid id")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return 0, false
	}
	return id, true
}

func getApiError(err error) utils.ApiError {
	var verr *models.ValidationError
	var terr *models.TransitionError
	switch {
	case errors.As(err, &verr):
		return utils.NewValidationFailed(verr.Fields)
	case errors.As(err, &terr):
		return utils.ApiError{
			StatusCode: http.StatusUnprocessableEntity,
			Msg:        models.ErrIllegalTransition.Error(),
			Errors:     map[string][]string{"status": {terr.Error()}},
		}
	case errors.Is(err, models.ErrBookingNotFound):
		return utils.NewNotFound("Booking not found.")
	case errors.Is(err, models.ErrCareRecipientNotFound):
		return utils.NewNotFound("Care recipient not found.")
	case errors.Is(err, models.ErrNotFound):
		return utils.NewNotFound("Not found.")
	case errors.Is(err, models.ErrCapacityExceeded):
		return utils.NewBadRequest("Maximum 4 children allowed per booking.")
	case errors.Is(err, models.ErrInvalidAge):
		return utils.NewBadRequest(models.ErrInvalidAge.Error())
	case errors.Is(err, models.ErrStaleBooking):
		return utils.NewApiError(http.StatusConflict, "The booking was changed by another request. Reload and try again.")
	case errors.Is(err, models.ErrTerminalBooking):
		return utils.NewApiError(http.StatusUnprocessableEntity, "The booking is already closed.")
	default:
		return utils.NewInternalServerError("internal server error")
	}
}
