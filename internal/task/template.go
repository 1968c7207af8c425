package task

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Template is a reusable task blueprint read from templates.yaml.
type Template struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Contexts    []string `yaml:"contexts"`
	Energy      string   `yaml:"energy"`
	TimeMinutes int      `yaml:"time_minutes"`
	Recurrence  string   `yaml:"recurrence"`
	Status      string   `yaml:"status"`
	Subtasks    []string `yaml:"subtasks"`
}

// LoadTemplates reads named templates from a YAML file. A missing file is
// not an error; it yields an empty map.
func LoadTemplates(path string) (map[string]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Template{}, nil
		}
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var templates map[string]Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if templates == nil {
		templates = map[string]Template{}
	}
	return templates, nil
}

// Instantiate builds a fresh task from the template. Context tags are
// normalized the same way quick-add normalizes them.
func (tpl Template) Instantiate(now time.Time) Task {
	status := StatusInbox
	if tpl.Status != "" && ValidStatus(Status(tpl.Status)) {
		status = Status(tpl.Status)
	}
	contexts := make([]string, 0, len(tpl.Contexts))
	seen := make(map[string]bool)
	for _, c := range tpl.Contexts {
		tag := strings.ToLower(strings.TrimSpace(c))
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "@") {
			tag = "@" + tag
		}
		if !seen[tag] {
			seen[tag] = true
			contexts = append(contexts, tag)
		}
	}
	subtasks := make([]Subtask, 0, len(tpl.Subtasks))
	for _, title := range tpl.Subtasks {
		if title = strings.TrimSpace(title); title != "" {
			subtasks = append(subtasks, Subtask{Title: title})
		}
	}
	return Task{
		ID:          uuid.NewString(),
		Title:       tpl.Title,
		Description: tpl.Description,
		Type:        "task",
		Status:      status,
		Contexts:    contexts,
		Energy:      tpl.Energy,
		TimeMinutes: tpl.TimeMinutes,
		Recurrence:  tpl.Recurrence,
		Subtasks:    subtasks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
