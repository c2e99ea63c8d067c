package generation

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
)

const (
	defaultTitleTemplate = `Create slide titles for a presentation on the topic '{{.Topic}}'.
Return one title per line and nothing else.`

	defaultContentTemplate = `Create detailed content for the slide title: '{{.Title}}'.
Write a few complete sentences of plain prose without markdown.`
)

type titleData struct {
	Topic string
}

type contentData struct {
	Title string
}

// Prompts builds the prompts sent for slide titles and slide bodies.
type Prompts struct {
	title   *template.Template
	content *template.Template
}

// DefaultPrompts returns the built-in prompt templates.
func DefaultPrompts() *Prompts {
	return &Prompts{
		title:   template.Must(template.New("title").Parse(defaultTitleTemplate)),
		content: template.Must(template.New("content").Parse(defaultContentTemplate)),
	}
}

// LoadPrompts returns the built-in templates, replacing each one whose path is
// non-empty with the template read from that file.
func LoadPrompts(titlePath, contentPath string) (*Prompts, error) {
	p := DefaultPrompts()

	if titlePath != "" {
		tmpl, err := parseTemplateFile("title", titlePath)
		if err != nil {
			return nil, err
		}
		p.title = tmpl
	}

	if contentPath != "" {
		tmpl, err := parseTemplateFile("content", contentPath)
		if err != nil {
			return nil, err
		}
		p.content = tmpl
	}

	return p, nil
}

func parseTemplateFile(name, path string) (*template.Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s prompt template from %s: %v",
			ErrInvalidConfig, name, path, err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s prompt template: %v",
			ErrInvalidConfig, name, err)
	}
	return tmpl, nil
}

// Title returns the prompt asking for slide titles about topic.
func (p *Prompts) Title(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("%w: topic cannot be empty", ErrGenerationFailed)
	}
	return execute(p.title, titleData{Topic: topic})
}

// Content returns the prompt asking for the body of the slide titled title.
func (p *Prompts) Content(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: slide title cannot be empty", ErrGenerationFailed)
	}
	return execute(p.content, contentData{Title: title})
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
