package mail

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"github.com/jhillyerd/enmime"
)

// Storage caps for message bodies. Oversized bodies are truncated, not rejected.
const (
	MaxBodyText = 50 * 1024
	MaxBodyHTML = 100 * 1024
)

// ParsedEmail represents a parsed email message
type ParsedEmail struct {
	SenderEmail    string
	SenderName     string
	Subject        string
	Snippet        string
	BodyText       string
	BodyHTML       string
	AttachmentInfo string
	MessageID      string
}

type attachmentMeta struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ParseEmail parses an email from an io.Reader
func ParseEmail(r io.Reader) (*ParsedEmail, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, err
	}

	parsed := &ParsedEmail{
		Subject:   env.GetHeader("Subject"),
		BodyText:  truncate(env.Text, MaxBodyText),
		BodyHTML:  truncate(env.HTML, MaxBodyHTML),
		MessageID: strings.Trim(env.GetHeader("Message-Id"), " <>"),
	}

	// Parse From header
	fromHeader := env.GetHeader("From")
	parsed.SenderName, parsed.SenderEmail = parseFromHeader(fromHeader)

	// Generate snippet
	parsed.Snippet = generateSnippet(parsed.BodyText, parsed.BodyHTML)

	// Attachment contents are not stored; only the metadata survives.
	var metas []attachmentMeta
	for _, att := range env.Attachments {
		metas = append(metas, attachmentMeta{
			Filename:    att.FileName,
			ContentType: att.ContentType,
			Size:        int64(len(att.Content)),
		})
	}
	for _, att := range env.Inlines {
		if att.FileName != "" {
			metas = append(metas, attachmentMeta{
				Filename:    att.FileName,
				ContentType: att.ContentType,
				Size:        int64(len(att.Content)),
			})
		}
	}
	if len(metas) > 0 {
		if data, err := json.Marshal(metas); err == nil {
			parsed.AttachmentInfo = string(data)
		}
	}

	return parsed, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// parseFromHeader extracts name and email from a From header
func parseFromHeader(from string) (name, email string) {
	from = strings.TrimSpace(from)
	if from == "" {
		return "", ""
	}

	// Pattern: "Name" <email@example.com> or Name <email@example.com>
	re := regexp.MustCompile(`^(?:"?([^"<]*)"?\s*)?<?([^<>]+@[^<>]+)>?$`)
	matches := re.FindStringSubmatch(from)

	if len(matches) >= 3 {
		name = strings.TrimSpace(matches[1])
		email = strings.TrimSpace(matches[2])
		// Remove quotes from name
		name = strings.Trim(name, `"`)
	} else {
		// Fallback: treat entire string as email
		email = from
	}

	return name, email
}

// generateSnippet creates a preview snippet from email body
func generateSnippet(bodyText, bodyHTML string) string {
	var text string

	if bodyText != "" {
		text = bodyText
	} else if bodyHTML != "" {
		// Strip HTML tags
		text = stripHTMLTags(bodyHTML)
	}

	// Clean up whitespace
	text = strings.Join(strings.Fields(text), " ")
	text = strings.TrimSpace(text)

	// Truncate to 255 characters
	if len(text) > 255 {
		text = text[:252] + "..."
	}

	return text
}

// stripHTMLTags removes HTML tags from a string
func stripHTMLTags(html string) string {
	// Remove script and style elements
	re := regexp.MustCompile(`(?i)<script[^>]*>[\s\S]*?</script>|<style[^>]*>[\s\S]*?</style>`)
	html = re.ReplaceAllString(html, "")

	// Remove HTML tags
	re = regexp.MustCompile(`<[^>]*>`)
	html = re.ReplaceAllString(html, " ")

	// Decode common HTML entities
	html = strings.ReplaceAll(html, "&nbsp;", " ")
	html = strings.ReplaceAll(html, "&amp;", "&")
	html = strings.ReplaceAll(html, "&lt;", "<")
	html = strings.ReplaceAll(html, "&gt;", ">")
	html = strings.ReplaceAll(html, "&quot;", `"`)
	html = strings.ReplaceAll(html, "&#39;", "'")

	return html
}
