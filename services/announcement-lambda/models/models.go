package models

// EventAnnouncement is built from a create-event body, validated,
// formatted into a message and discarded
type EventAnnouncement struct {
	Title       string
	Description string
	Date        string // YYYY-MM-DD
	Time        string // optional
	Location    string // optional
}

// SubscriptionRequest enrolls an endpoint on the topic
type SubscriptionRequest struct {
	Protocol string `validate:"oneof=email sms"`
	Endpoint string
}

// UnsubscriptionRequest removes a subscriber by the handle returned from subscribe
type UnsubscriptionRequest struct {
	SubscriptionArn string
}

// EventRecord is one item of the list-events response
type EventRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	CreatedAt   string `json:"created_at"`
}

// ============================================================
// Response bodies
// ============================================================

type ListEventsResponse struct {
	Success   bool          `json:"success"`
	Events    []EventRecord `json:"events"`
	Count     int           `json:"count"`
	Timestamp string        `json:"timestamp"`
}

type CreateEventResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	MessageID  string `json:"messageId"`
	EventTitle string `json:"eventTitle"`
	Timestamp  string `json:"timestamp"`
}

type SubscribeResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	SubscriptionArn string `json:"subscriptionArn"`
	Protocol        string `json:"protocol"`
	Endpoint        string `json:"endpoint"`
}

type UnsubscribeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
