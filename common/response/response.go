package response

import (
	"encoding/json"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// TimestampLayout is the UTC timestamp layout used in every response body
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Headers returns the fixed header set attached to every response.
// A fresh map is returned so callers cannot mutate shared state.
func Headers() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
		"Access-Control-Allow-Methods": "GET,POST,OPTIONS",
		"Content-Type":                 "application/json",
	}
}

// Clock returns the current time; replaced in tests
var Clock = time.Now

// Timestamp formats the current UTC time for response bodies
func Timestamp() string {
	return Clock().UTC().Format(TimestampLayout)
}

// ErrorBody is the uniform error payload
type ErrorBody struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// CORSResponse wraps a status code and body text with the fixed headers
func CORSResponse(statusCode int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    Headers(),
		Body:       body,
	}
}

// ErrorResponse builds {success:false, error, timestamp} and wraps it
func ErrorResponse(statusCode int, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(ErrorBody{
		Success:   false,
		Error:     message,
		Timestamp: Timestamp(),
	})
	return CORSResponse(statusCode, string(body))
}

// JSONResponse marshals data and wraps it. Marshal failures turn into a 500
// error body so the caller always gets a well-formed response.
func JSONResponse(statusCode int, data interface{}) events.APIGatewayProxyResponse {
	body, err := json.Marshal(data)
	if err != nil {
		return ErrorResponse(StatusInternalServerError, "Failed to serialize response")
	}
	return CORSResponse(statusCode, string(body))
}

// Common HTTP status codes
const (
	StatusOK                  = 200
	StatusBadRequest          = 400
	StatusInternalServerError = 500
)
