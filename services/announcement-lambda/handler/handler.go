package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"

	apperrors "github.com/event-announcer/common/errors"
	"github.com/event-announcer/common/logger"
	"github.com/event-announcer/common/metrics"
	"github.com/event-announcer/common/response"
	"github.com/event-announcer/services/announcement-lambda/models"
	"github.com/event-announcer/services/announcement-lambda/usecase"
)

// Route names, also used as log and metric labels
const (
	RoutePreflight        = "cors-preflight"
	RouteListEvents       = "list-events"
	RouteCreateEvent      = "create-event"
	RouteSubscribe        = "subscribe"
	RouteUnsubscribe      = "unsubscribe"
	RouteMethodNotAllowed = "method-not-allowed"
)

const (
	msgInternalError    = "Internal server error occurred"
	msgRetrieveFailed   = "Failed to retrieve events"
	msgPublishFailed    = "Internal server error occurred while processing the event announcement"
	msgAnnouncementSent = "Event announcement sent successfully!"
	msgUnsubscribed     = "Successfully unsubscribed from notifications"
)

// AnnouncementHandler dispatches announcement requests
type AnnouncementHandler struct {
	useCase *usecase.AnnouncementUseCase
	log     *logger.Logger
	metrics *metrics.Recorder
}

// NewAnnouncementHandler creates the dispatcher. rec may be nil.
func NewAnnouncementHandler(uc *usecase.AnnouncementUseCase, log *logger.Logger, rec *metrics.Recorder) *AnnouncementHandler {
	if log == nil {
		log = logger.Default()
	}
	return &AnnouncementHandler{
		useCase: uc,
		log:     log,
		metrics: rec,
	}
}

// Resolve picks exactly one route for a method and path.
// Methods are matched case-sensitively; an empty method is treated as POST.
func Resolve(method, path string) string {
	if method == "" {
		method = "POST"
	}

	switch {
	case method == "OPTIONS":
		return RoutePreflight
	case method == "GET":
		return RouteListEvents
	case method == "POST" && strings.Contains(path, "/subscribe"):
		return RouteSubscribe
	case method == "POST" && strings.Contains(path, "/unsubscribe"):
		return RouteUnsubscribe
	case method == "POST":
		return RouteCreateEvent
	default:
		return RouteMethodNotAllowed
	}
}

// Handle is the Lambda entry point. It always returns a well-formed response
// and a nil error; failures are reported in the response body.
func (h *AnnouncementHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, _ error) {
	start := time.Now()
	log := h.log.WithContext(ctx)

	if raw, err := json.Marshal(request); err == nil {
		log.Info("Received event: %s", raw)
	}

	route := Resolve(request.HTTPMethod, request.Path)

	defer func() {
		if r := recover(); r != nil {
			appErr := apperrors.Internal(fmt.Sprintf("%v", r))
			logAppError(log.With("route", route), appErr, "Unexpected error")
			resp = response.ErrorResponse(response.StatusInternalServerError, msgInternalError)
		}
		elapsed := time.Since(start)
		log.LogInvocation(logger.InvocationLog{
			Method:   request.HTTPMethod,
			Path:     request.Path,
			Route:    route,
			Status:   resp.StatusCode,
			Duration: elapsed,
		})
		h.metrics.Observe(route, resp.StatusCode, elapsed)
	}()

	var err error
	switch route {
	case RoutePreflight:
		resp = response.CORSResponse(response.StatusOK, "")
	case RouteListEvents:
		resp, err = h.HandleListEvents(ctx, request)
	case RouteSubscribe:
		resp, err = h.HandleSubscribe(ctx, request)
	case RouteUnsubscribe:
		resp, err = h.HandleUnsubscribe(ctx, request)
	case RouteCreateEvent:
		resp, err = h.HandleCreateEvent(ctx, request)
	default:
		appErr := apperrors.MethodNotAllowed(request.HTTPMethod)
		resp = response.ErrorResponse(appErr.HTTPStatus, appErr.Message)
	}

	if err != nil {
		logAppError(log.With("route", route), apperrors.ToAppError(err), "Unexpected error")
		resp = response.ErrorResponse(response.StatusInternalServerError, msgInternalError)
	}
	return resp, nil
}

// logAppError logs the error with its code and fields. Server-side failures
// also get the captured stack at DEBUG.
func logAppError(log *logger.Logger, appErr *apperrors.AppError, msg string) {
	log = log.WithFields(appErr.Fields).With("code", appErr.Code)
	if appErr.Cause != nil {
		log = log.WithError(appErr.Cause)
	}
	log.Error("%s: %s", msg, appErr.Message)
	if appErr.HTTPStatus >= response.StatusInternalServerError && appErr.Stack != "" {
		log.Debug("stack:\n%s", appErr.Stack)
	}
}

// HandleListEvents handles GET: recent announcements, count and timestamp
func (h *AnnouncementHandler) HandleListEvents(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	records, err := h.useCase.ListEvents(ctx)
	if err != nil {
		logAppError(h.log.WithContext(ctx), apperrors.ToAppError(err), "Error retrieving events")
		return response.ErrorResponse(response.StatusInternalServerError, msgRetrieveFailed), nil
	}
	if records == nil {
		records = []models.EventRecord{}
	}

	return response.JSONResponse(response.StatusOK, models.ListEventsResponse{
		Success:   true,
		Events:    records,
		Count:     len(records),
		Timestamp: response.Timestamp(),
	}), nil
}

// HandleCreateEvent handles POST (default path): validate, publish, report the message id
func (h *AnnouncementHandler) HandleCreateEvent(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.log.WithContext(ctx)

	ann, appErr := ValidateCreateEvent(request)
	if appErr != nil {
		logAppError(log, appErr, "Validation error")
		return response.ErrorResponse(appErr.HTTPStatus, appErr.Message), nil
	}

	messageID, err := h.useCase.PublishAnnouncement(ctx, ann)
	if err != nil {
		log.WithError(err).Error("Unexpected error processing event")
		return response.ErrorResponse(response.StatusInternalServerError, msgPublishFailed), nil
	}

	log.Info("Successfully published message with ID: %s", messageID)
	return response.JSONResponse(response.StatusOK, models.CreateEventResponse{
		Success:    true,
		Message:    msgAnnouncementSent,
		MessageID:  messageID,
		EventTitle: ann.Title,
		Timestamp:  response.Timestamp(),
	}), nil
}

// HandleSubscribe handles POST .../subscribe.
// Gateway failures are reported as 400 with the service's message, unlike create-event.
func (h *AnnouncementHandler) HandleSubscribe(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.log.WithContext(ctx)

	sub, appErr := ValidateSubscribe(request)
	if appErr == nil {
		arn, err := h.useCase.Subscribe(ctx, sub)
		if err == nil {
			log.Info("Created subscription: %s", arn)
			return response.JSONResponse(response.StatusOK, models.SubscribeResponse{
				Success:         true,
				Message:         fmt.Sprintf("Successfully subscribed %s to notifications", sub.Endpoint),
				SubscriptionArn: arn,
				Protocol:        sub.Protocol,
				Endpoint:        sub.Endpoint,
			}), nil
		}
		appErr = apperrors.NotificationError("subscribe", err).WithStatus(response.StatusBadRequest)
	}

	logAppError(log, appErr, "Subscription error")
	return response.ErrorResponse(appErr.HTTPStatus, appErr.Message), nil
}

// HandleUnsubscribe handles POST .../unsubscribe, with the same 400 mapping as subscribe
func (h *AnnouncementHandler) HandleUnsubscribe(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.log.WithContext(ctx)

	unsub, appErr := ValidateUnsubscribe(request)
	if appErr == nil {
		err := h.useCase.Unsubscribe(ctx, unsub)
		if err == nil {
			log.Info("Unsubscribed: %s", unsub.SubscriptionArn)
			return response.JSONResponse(response.StatusOK, models.UnsubscribeResponse{
				Success: true,
				Message: msgUnsubscribed,
			}), nil
		}
		appErr = apperrors.NotificationError("unsubscribe", err).WithStatus(response.StatusBadRequest)
	}

	logAppError(log, appErr, "Unsubscription error")
	return response.ErrorResponse(appErr.HTTPStatus, appErr.Message), nil
}
