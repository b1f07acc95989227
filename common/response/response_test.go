package response

import (
	"encoding/json"
	"testing"
	"time"
)

func fixedClock(t *testing.T) {
	t.Helper()
	prev := Clock
	Clock = func() time.Time {
		return time.Date(2024, 12, 15, 10, 0, 0, 123456000, time.FixedZone("ICT", 7*3600))
	}
	t.Cleanup(func() { Clock = prev })
}

func TestCORSResponse(t *testing.T) {
	resp := CORSResponse(StatusOK, "")

	if resp.StatusCode != StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, StatusOK)
	}
	if resp.Body != "" {
		t.Errorf("Body = %q, want empty", resp.Body)
	}

	want := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
		"Access-Control-Allow-Methods": "GET,POST,OPTIONS",
		"Content-Type":                 "application/json",
	}
	if len(resp.Headers) != len(want) {
		t.Fatalf("got %d headers, want %d", len(resp.Headers), len(want))
	}
	for k, v := range want {
		if resp.Headers[k] != v {
			t.Errorf("header %s = %q, want %q", k, resp.Headers[k], v)
		}
	}
}

func TestHeaders_NotShared(t *testing.T) {
	a := Headers()
	a["Content-Type"] = "text/plain"

	if Headers()["Content-Type"] != "application/json" {
		t.Error("Headers() returned a shared map")
	}
}

func TestErrorResponse(t *testing.T) {
	fixedClock(t)

	resp := ErrorResponse(StatusBadRequest, "Request body is missing")
	if resp.StatusCode != StatusBadRequest {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, StatusBadRequest)
	}

	var body map[string]interface{}
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["error"] != "Request body is missing" {
		t.Errorf("error = %v", body["error"])
	}
	if body["timestamp"] != "2024-12-15T03:00:00.123456Z" {
		t.Errorf("timestamp = %v", body["timestamp"])
	}
}

func TestJSONResponse_MarshalFailure(t *testing.T) {
	resp := JSONResponse(StatusOK, map[string]interface{}{"bad": make(chan int)})

	if resp.StatusCode != StatusInternalServerError {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, StatusInternalServerError)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Error("headers missing on marshal failure")
	}
}
