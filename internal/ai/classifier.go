package ai

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotConfigured indicates the AI client is not configured
	ErrNotConfigured = errors.New("AI client not configured")
	// ErrAPICallFailed indicates the AI API call failed
	ErrAPICallFailed = errors.New("AI API call failed")
	// ErrInvalidResponse indicates an invalid response from the AI API
	ErrInvalidResponse = errors.New("invalid AI API response")
)

// Input is the message context handed to the classifier.
type Input struct {
	Account    string
	FromName   string
	FromEmail  string
	ToEmail    string
	Subject    string
	BodyText   string
	ReceivedAt time.Time
}

// ActionProposal is one CRM action the classifier suggests for a message.
type ActionProposal struct {
	Kind    string
	Reason  string
	Payload string
}

// Analysis is the structured result of classifying one message.
type Analysis struct {
	Classification string
	Urgency        string
	Sentiment      string
	Language       string
	Summary        string
	Proposals      []ActionProposal
}

// Classifier analyzes a message. A failed or unparsable classification is
// always an error, never a low-confidence Analysis.
type Classifier interface {
	Classify(ctx context.Context, input Input) (*Analysis, error)
}

// Classification labels
const (
	LabelBooking     = "booking"
	LabelSponsoring  = "sponsoring"
	LabelPartnership = "partnership"
	LabelMedia       = "media"
	LabelVolunteer   = "volunteer"
	LabelVIP         = "vip"
	LabelDonation    = "donation"
	LabelGeneral     = "general"
	LabelNewsletter  = "newsletter"
	LabelSpam        = "spam"
	LabelInternal    = "internal"
	LabelAutomated   = "automated"
)

// Urgency levels
const (
	UrgencyLow      = "low"
	UrgencyNormal   = "normal"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

var validLabels = map[string]bool{
	LabelBooking: true, LabelSponsoring: true, LabelPartnership: true,
	LabelMedia: true, LabelVolunteer: true, LabelVIP: true,
	LabelDonation: true, LabelGeneral: true, LabelNewsletter: true,
	LabelSpam: true, LabelInternal: true, LabelAutomated: true,
}

var validUrgencies = map[string]bool{
	UrgencyLow: true, UrgencyNormal: true, UrgencyMedium: true,
	UrgencyHigh: true, UrgencyCritical: true,
}

var validSentiments = map[string]bool{
	"positiv": true, "neutral": true, "negativ": true,
}
