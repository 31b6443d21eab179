// Package assist drafts listing copy and tenant messages with a
// text-generation model. Failures never surface as errors: callers always
// get a displayable string.
package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/logging"
)

// Fallback replies.
const (
	DescriptionFailed = "Error generating description. Please try again."
	DescriptionEmpty  = "Could not generate description."
	MessageFailed     = "Error generating message."
	MessageEmpty      = "Could not generate message."
)

// ErrNoAPIKey is returned by the generator used when no key is configured.
var ErrNoAPIKey = errors.New("no API key configured")

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Unavailable is a Generator that always fails with Err.
type Unavailable struct {
	Err error
}

// Generate implements Generator.
func (u Unavailable) Generate(context.Context, string) (string, error) {
	if u.Err == nil {
		return "", ErrNoAPIKey
	}
	return "", u.Err
}

// Tone sets the register of a drafted tenant message.
type Tone string

const (
	Professional Tone = "Professional"
	Friendly     Tone = "Friendly"
	Firm         Tone = "Firm"
)

// ParseTone accepts a tone name in any letter case. Empty means Professional.
func ParseTone(s string) (Tone, error) {
	if strings.TrimSpace(s) == "" {
		return Professional, nil
	}
	for _, t := range []Tone{Professional, Friendly, Firm} {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tone %q (want Professional, Friendly or Firm)", s)
}

// Assistant builds prompts and applies the fallback replies.
type Assistant struct {
	gen    Generator
	logger *slog.Logger
}

// New returns an Assistant backed by gen.
func New(gen Generator, logger *slog.Logger) *Assistant {
	return &Assistant{gen: gen, logger: logging.For(logger, logging.ComponentAssist)}
}

// PropertyRequest describes a property to write listing copy for.
type PropertyRequest struct {
	Name      string
	Kind      string
	Bedrooms  int
	Bathrooms float64
	Features  string
}

func (r PropertyRequest) prompt() string {
	return fmt.Sprintf(`Write a short, catchy rental listing description (max 80 words) for a property named %q.
Details: %s, %d bedrooms, %g bathrooms.
Key features: %s.
Tone: Professional yet inviting.`, r.Name, r.Kind, r.Bedrooms, r.Bathrooms, r.Features)
}

// PropertyDescription drafts a listing description.
func (a *Assistant) PropertyDescription(ctx context.Context, r PropertyRequest) string {
	return a.run(ctx, "property_description", r.prompt(), DescriptionFailed, DescriptionEmpty)
}

func messagePrompt(tenantName, topic string, tone Tone) string {
	return fmt.Sprintf(`Draft a short message (SMS/Email style, max 60 words) to a tenant named %s.
Topic: %s.
Tone: %s.
Do not include subject lines or placeholders.`, tenantName, topic, tone)
}

// TenantMessage drafts a message to a tenant about topic.
func (a *Assistant) TenantMessage(ctx context.Context, tenantName, topic string, tone Tone) string {
	return a.run(ctx, "tenant_message", messagePrompt(tenantName, topic, tone), MessageFailed, MessageEmpty)
}

func (a *Assistant) run(ctx context.Context, op, prompt, failed, empty string) string {
	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		a.logger.WarnContext(ctx, "Text generation failed", logging.FieldOperation, op, logging.FieldError, err)
		return failed
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return empty
	}
	return text
}
