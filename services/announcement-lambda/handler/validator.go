package handler

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/event-announcer/common/errors"
	"github.com/event-announcer/services/announcement-lambda/models"
)

// dateLayout is the only accepted event date format
const dateLayout = "2006-01-02"

var validate = validator.New()

// requiredEventFields are checked in order; the first violation wins
var requiredEventFields = []string{"title", "description", "date"}

// rawBody returns the request body, decoding it when API Gateway base64-encoded it
func rawBody(request events.APIGatewayProxyRequest) (string, *apperrors.AppError) {
	if !request.IsBase64Encoded {
		return request.Body, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(request.Body)
	if err != nil {
		return "", apperrors.InvalidJSON(err)
	}
	return string(decoded), nil
}

// decodeObject parses body as a JSON object. Anything else, null included, is invalid JSON.
func decodeObject(body string) (map[string]json.RawMessage, *apperrors.AppError) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, apperrors.InvalidJSON(err)
	}
	if fields == nil {
		return nil, apperrors.InvalidJSON(nil)
	}
	return fields, nil
}

func parseBody(request events.APIGatewayProxyRequest) (map[string]json.RawMessage, *apperrors.AppError) {
	body, appErr := rawBody(request)
	if appErr != nil {
		return nil, appErr
	}
	if body == "" {
		return nil, apperrors.MissingBody()
	}
	return decodeObject(body)
}

// stringField reports the field's string value, whether the key is present,
// and whether the value is a JSON string. A JSON null is treated as absent.
func stringField(fields map[string]json.RawMessage, key string) (value string, present bool, isString bool) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return "", false, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", true, false
	}
	return value, true, true
}

// ValidateCreateEvent checks a create-event body: present, JSON, required
// fields non-blank after trimming, and a real YYYY-MM-DD date.
func ValidateCreateEvent(request events.APIGatewayProxyRequest) (*models.EventAnnouncement, *apperrors.AppError) {
	fields, appErr := parseBody(request)
	if appErr != nil {
		return nil, appErr
	}

	values := make(map[string]string, len(requiredEventFields))
	for _, name := range requiredEventFields {
		v, _, isString := stringField(fields, name)
		v = strings.TrimSpace(v)
		if !isString || v == "" {
			return nil, apperrors.MissingField(name)
		}
		values[name] = v
	}

	if err := validate.Var(values["date"], "datetime="+dateLayout); err != nil {
		return nil, apperrors.InvalidDate()
	}

	eventTime, _, _ := stringField(fields, "time")
	location, _, _ := stringField(fields, "location")

	return &models.EventAnnouncement{
		Title:       values["title"],
		Description: values["description"],
		Date:        values["date"],
		Time:        strings.TrimSpace(eventTime),
		Location:    strings.TrimSpace(location),
	}, nil
}

// ValidateSubscribe requires protocol and endpoint; protocol is lower-cased
// and must be email or sms.
func ValidateSubscribe(request events.APIGatewayProxyRequest) (*models.SubscriptionRequest, *apperrors.AppError) {
	fields, appErr := parseBody(request)
	if appErr != nil {
		return nil, appErr
	}

	protocol, protocolPresent, protocolIsString := stringField(fields, "protocol")
	endpoint, endpointPresent, endpointIsString := stringField(fields, "endpoint")
	if !protocolPresent || !endpointPresent || !endpointIsString {
		return nil, apperrors.MissingSubscriptionFields()
	}
	if !protocolIsString {
		return nil, apperrors.InvalidProtocol()
	}

	sub := &models.SubscriptionRequest{
		Protocol: strings.ToLower(protocol),
		Endpoint: strings.TrimSpace(endpoint),
	}
	if err := validate.Struct(sub); err != nil {
		return nil, apperrors.InvalidProtocol()
	}
	return sub, nil
}

// ValidateUnsubscribe requires the subscriptionArn returned by a prior subscribe
func ValidateUnsubscribe(request events.APIGatewayProxyRequest) (*models.UnsubscriptionRequest, *apperrors.AppError) {
	fields, appErr := parseBody(request)
	if appErr != nil {
		return nil, appErr
	}

	arn, present, isString := stringField(fields, "subscriptionArn")
	if !present || !isString {
		return nil, apperrors.MissingSubscriptionArn()
	}
	return &models.UnsubscriptionRequest{SubscriptionArn: arn}, nil
}
