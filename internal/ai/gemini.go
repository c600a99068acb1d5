package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const systemPrompt = `Du bist der KI-Assistent von INCLUSIONS, einem inklusiven Event-Verein aus Zürich.
Du analysierst eingehende E-Mails und extrahierst strukturierte Informationen.

INCLUSIONS organisiert inklusive Events (Menschen mit und ohne Beeinträchtigung),
hauptsächlich im Supermarket Zürich. Nächstes Event: INCLUSIONS 2.0 am 25. April 2026.

Wichtige Kontexte:
- Sponsoring-Anfragen sind sehr wertvoll (immer urgency: high)
- Medien-Anfragen sind zeitkritisch (urgency: high)
- VIP-Anmeldungen: Personen mit Beeinträchtigung, die Gratis-Eintritt + Begleitung bekommen
- Booking: DJ-Buchungen, Location-Anfragen, Technik
- Partnerschaften: NPOs, Stiftungen, Organisationen aus dem Inklusionsbereich
- Interne Mails (zwischen @inclusions.zone Adressen): als "internal" klassifizieren, keine Aktionen

Antworte IMMER als valides JSON (kein Markdown, keine Erklärung).`

const analysisPromptTemplate = `Analysiere diese E-Mail und gib ein JSON-Objekt zurück:

ABSENDER: %s <%s>
AN: %s
BETREFF: %s
DATUM: %s
ACCOUNT: %s

--- E-MAIL-INHALT ---
%s
--- ENDE ---

Gib folgendes JSON zurück:
{
  "classification": "booking" | "sponsoring" | "partnership" | "media" | "volunteer" | "vip" | "donation" | "general" | "newsletter" | "spam" | "internal" | "automated",
  "urgency": "low" | "normal" | "medium" | "high" | "critical",
  "sentiment": "positiv" | "neutral" | "negativ",
  "language": "de" | "en" | "fr" | "it",
  "suggested_actions": [
    {
      "type": "create_contact" | "create_company" | "create_deal" | "create_booking" | "create_vip" | "add_note" | "update_booking_status",
      "reason": "Warum diese Aktion?",
      "data": { }
    }
  ],
  "summary_de": "Zusammenfassung in 1-2 Sätzen auf Deutsch"
}

REGELN:
- Bei internen Mails (@inclusions.zone → @inclusions.zone): classification="internal", keine suggested_actions
- Bei automatisierten Mails (no-reply, noreply, mailer-daemon): classification="automated", keine Aktionen
- Bei Spam/Newsletter: classification="spam" oder "newsletter", keine Aktionen
- create_contact.data braucht: {first_name, last_name, email, phone?, organization?, role?}
- create_company.data braucht: {name, website?, email?, notes?}
- create_deal.data braucht: {title, description, amount_chf?, status: "lead", contact_email}
- create_booking.data braucht: {name, email, event_type?, message?}
- create_vip.data braucht: {name, email, has_companion?, accessibility?}
- add_note.data braucht: {note}
- update_booking_status.data braucht: {booking_id, status: "confirmed" | "declined"}
- Setze urgency="high" bei: Sponsoring > CHF 500, Medienanfragen, Deadlines < 7 Tage`

// Prompt bodies are capped well below the storage cap to keep token usage sane.
const maxPromptBody = 8000

// GeminiClassifier classifies messages through the Gemini REST API.
type GeminiClassifier struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClassifier creates a Gemini-backed Classifier
func NewGeminiClassifier(apiKey, model string) *GeminiClassifier {
	return &GeminiClassifier{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SetBaseURL sets a custom base URL for the API
func (c *GeminiClassifier) SetBaseURL(url string) {
	c.baseURL = strings.TrimSuffix(url, "/")
}

// IsConfigured returns whether the classifier has an API key
func (c *GeminiClassifier) IsConfigured() bool {
	return c.apiKey != ""
}

type geminiRequest struct {
	SystemInstruction geminiContent   `json:"system_instruction"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type analysisPayload struct {
	Classification   string `json:"classification"`
	Urgency          string `json:"urgency"`
	Sentiment        string `json:"sentiment"`
	Language         string `json:"language"`
	SuggestedActions []struct {
		Type   string          `json:"type"`
		Reason string          `json:"reason"`
		Data   json.RawMessage `json:"data"`
	} `json:"suggested_actions"`
	SummaryDE string `json:"summary_de"`
}

// Classify analyzes one message
func (c *GeminiClassifier) Classify(ctx context.Context, input Input) (*Analysis, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	body := input.BodyText
	if len(body) > maxPromptBody {
		body = body[:maxPromptBody]
	}

	prompt := fmt.Sprintf(analysisPromptTemplate,
		input.FromName,
		input.FromEmail,
		input.ToEmail,
		input.Subject,
		input.ReceivedAt.Format(time.RFC3339),
		input.Account,
		body,
	)

	request := geminiRequest{
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:      0.2,
			ResponseMimeType: "application/json",
		},
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPICallFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", ErrAPICallFailed, resp.StatusCode, string(errBody))
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty candidates", ErrInvalidResponse)
	}

	return parseAnalysis(geminiResp.Candidates[0].Content.Parts[0].Text)
}

// parseAnalysis decodes the model output into an Analysis. The model sometimes
// wraps its JSON in markdown fences despite the response mime type.
func parseAnalysis(text string) (*Analysis, error) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	var payload analysisPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if !validLabels[payload.Classification] {
		return nil, fmt.Errorf("%w: unknown classification %q", ErrInvalidResponse, payload.Classification)
	}
	if !validUrgencies[payload.Urgency] {
		payload.Urgency = UrgencyNormal
	}
	if !validSentiments[payload.Sentiment] {
		payload.Sentiment = "neutral"
	}

	analysis := &Analysis{
		Classification: payload.Classification,
		Urgency:        payload.Urgency,
		Sentiment:      payload.Sentiment,
		Language:       payload.Language,
		Summary:        payload.SummaryDE,
	}

	for _, action := range payload.SuggestedActions {
		if action.Type == "" {
			continue
		}
		data := string(action.Data)
		if data == "" {
			data = "{}"
		}
		analysis.Proposals = append(analysis.Proposals, ActionProposal{
			Kind:    action.Type,
			Reason:  action.Reason,
			Payload: data,
		})
	}

	return analysis, nil
}
