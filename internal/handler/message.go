package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	domain "github.com/avicennajr/gofdisms/internal/domain/message"
	"github.com/avicennajr/gofdisms/internal/request"
	"github.com/avicennajr/gofdisms/internal/response"
	"github.com/avicennajr/gofdisms/internal/scheduler"
	"github.com/avicennajr/gofdisms/internal/service"
	"github.com/avicennajr/gofdisms/pkg/fdi"
)

// MessageHandler wires HTTP endpoints to the message service
// and the background scheduler.
type MessageHandler struct {
	msgSvc service.MessageService
	schSvc scheduler.SchedulerService
}

// NewMessageHandler constructs a new MessageHandler with its dependencies.
func NewMessageHandler(msgSvc service.MessageService, schSvc scheduler.SchedulerService) *MessageHandler {
	return &MessageHandler{
		msgSvc: msgSvc,
		schSvc: schSvc,
	}
}

// CreateMessage godoc
// @Summary     Enqueue a message
// @Description Validates the recipient, normalizes it to international format and queues the message for sending.
// @Tags        messages
// @Accept      json
// @Produce     json
// @Param       request body request.CreateMessageRequest true "Recipient and content"
// @Success     201 {object} response.CreatedMessageResponse
// @Failure     400 {object} map[string]string
// @Router      /messages [post]
func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMessageRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	msg, err := h.msgSvc.Enqueue(r.Context(), req.To, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, fdi.ErrInvalidMobileNumber),
			errors.Is(err, domain.ErrEmptyRecipient),
			errors.Is(err, domain.ErrEmptyContent),
			errors.Is(err, domain.ErrContentTooLong):
			response.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, response.FromDomainMessage(msg))
}

// StartStopScheduler godoc
// @Summary     Control scheduler
// @Description Starts or stops the background outbox scheduler based on the given action.
// @Tags        scheduler
// @Accept      json
// @Produce     json
// @Param       request body request.SchedulerRequest true "Scheduler action (start|stop)"
// @Success     200 {object} response.SchedulerControlResponse
// @Failure     400 {object} map[string]string
// @Router      /scheduler [post]
func (h *MessageHandler) StartStopScheduler(w http.ResponseWriter, r *http.Request) {
	var req request.SchedulerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	switch req.Action {
	case "start":
		if err := h.schSvc.Start(); err != nil {
			response.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		payload := response.SchedulerControlPayload{
			Message: "scheduler started",
		}
		response.RespondJSON(w, http.StatusOK, payload)
		return

	case "stop":
		if err := h.schSvc.Stop(); err != nil {
			response.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		payload := response.SchedulerControlPayload{
			Message: "scheduler stopped",
		}
		response.RespondJSON(w, http.StatusOK, payload)
		return

	default:
		response.RespondError(w, http.StatusBadRequest, "action must be 'start' or 'stop'")
		return
	}
}

// GetSentMessages godoc
// @Summary     List sent messages
// @Description Returns a paginated list of successfully sent messages.
// @Tags        messages
// @Produce     json
// @Param       page  query int false "Page number"         default(1)
// @Param       limit query int false "Page size (max 100)" default(20)
// @Success     200 {object} response.SentMessagesResponse
// @Failure     500 {object} map[string]string
// @Router      /messages/sent [get]
func (h *MessageHandler) GetSentMessages(w http.ResponseWriter, r *http.Request) {
	pageStr := r.URL.Query().Get("page")
	limitStr := r.URL.Query().Get("limit")

	page := 1
	limit := 20

	if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
		page = v
	}

	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	items, total, err := h.msgSvc.GetSent(r.Context(), page, limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := response.SentMessagesPayload{
		Items: response.FromDomainMessages(items),
		Total: total,
		Page:  page,
		Limit: limit,
	}

	response.RespondJSON(w, http.StatusOK, payload)
}
