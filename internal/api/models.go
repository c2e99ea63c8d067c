package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/deckforge/internal/domain"
	"github.com/phrazzld/deckforge/internal/service"
	"github.com/phrazzld/deckforge/internal/source"
	"github.com/phrazzld/deckforge/internal/task"
)

// TopicDeckRequest is the payload of POST /api/decks/topic.
type TopicDeckRequest struct {
	Topic         string  `json:"topic"                     validate:"required,max=500"`
	MainTitle     string  `json:"main_title,omitempty"      validate:"max=200"`
	TitleFontSize float64 `json:"title_font_size,omitempty" validate:"omitempty,gte=12,lte=96"`
	FontSize      float64 `json:"font_size,omitempty"       validate:"omitempty,gte=12,lte=48"`
	FontColor     string  `json:"font_color,omitempty"`
}

// Validate checks rules the struct tags cannot express.
func (r TopicDeckRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("%w: topic cannot be blank", domain.ErrValidation)
	}
	return validateColor(r.FontColor)
}

// ToService converts the payload to a service request.
func (r TopicDeckRequest) ToService() service.TopicRequest {
	return service.TopicRequest{
		Topic: r.Topic,
		Style: service.Style{
			MainTitle:     r.MainTitle,
			TitleFontSize: r.TitleFontSize,
			BodyFontSize:  r.FontSize,
			FontColor:     r.FontColor,
		},
	}
}

// ContentDeckRequest is the payload of POST /api/decks/content.
// Exactly one of Text and URL is required.
type ContentDeckRequest struct {
	Text      string  `json:"text,omitempty"       validate:"required_without=URL,excluded_with=URL"`
	URL       string  `json:"url,omitempty"        validate:"omitempty,url"`
	MainTitle string  `json:"main_title,omitempty" validate:"max=200"`
	MaxChars  int     `json:"max_chars,omitempty"  validate:"omitempty,gte=50,lte=5000"`
	FontSize  float64 `json:"font_size,omitempty"  validate:"omitempty,gte=12,lte=48"`
	FontColor string  `json:"font_color,omitempty"`
}

// Validate checks rules the struct tags cannot express.
func (r ContentDeckRequest) Validate() error {
	if r.URL != "" && !source.IsURL(r.URL) {
		return fmt.Errorf("%w: url must use http or https", domain.ErrValidation)
	}
	return validateColor(r.FontColor)
}

// ToService converts the payload to a service request.
func (r ContentDeckRequest) ToService() service.ContentRequest {
	return service.ContentRequest{
		Text:     r.Text,
		Source:   r.URL,
		MaxChars: r.MaxChars,
		Style: service.Style{
			MainTitle:    r.MainTitle,
			BodyFontSize: r.FontSize,
			FontColor:    r.FontColor,
		},
	}
}

func validateColor(color string) error {
	if color == "" {
		return nil
	}
	if _, err := domain.ParseRGB(color); err != nil {
		return errors.Join(domain.ErrValidation, err)
	}
	return nil
}

// DeckJobResponse describes a submitted deck job.
type DeckJobResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	Slides      int       `json:"slides,omitempty"`
	Warnings    []string  `json:"warnings,omitempty"`
	DownloadURL string    `json:"download_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// recordToResponse converts a task record to a DeckJobResponse
func recordToResponse(rec task.Record) DeckJobResponse {
	resp := DeckJobResponse{
		ID:        rec.ID.String(),
		Type:      rec.Type,
		Status:    string(rec.Status),
		Error:     rec.Error,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if rec.Output != nil && rec.Status == task.TaskStatusCompleted {
		resp.Slides = rec.Output.Slides
		resp.Warnings = rec.Output.Warnings
		resp.DownloadURL = fmt.Sprintf("/api/decks/%s/file", rec.ID)
	}
	return resp
}
