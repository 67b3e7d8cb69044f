package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrEmptyProjectID  = errors.New("project ID cannot be empty")
)

// Status is the processing state reported by the remote service.
type Status string

const (
	// StatusGenerating means the service is still producing the project.
	StatusGenerating Status = "Generating"

	// StatusCompleted means generation finished successfully.
	StatusCompleted Status = "Completed"

	// StatusFailed means generation failed.
	StatusFailed Status = "Failed"

	// StatusEditing means an edit command is being applied.
	StatusEditing Status = "Editing"
)

// String returns the string representation of Status.
func (s Status) String() string {
	return string(s)
}

// Known returns true for the statuses this client understands.
func (s Status) Known() bool {
	switch s {
	case StatusGenerating, StatusCompleted, StatusFailed, StatusEditing:
		return true
	}
	return false
}

// IsActive returns true while the service is working on the project.
func (s Status) IsActive() bool {
	return s == StatusGenerating || s == StatusEditing
}

// Editable returns true if an edit may be requested in this status.
func (s Status) Editable() bool {
	return s == StatusCompleted
}

// ID is the opaque project identifier. The service may send it as a JSON
// number or a JSON string; both decode to the same textual form.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid project id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid project id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the string representation of ID.
func (id ID) String() string {
	return string(id)
}

// Project is one record of the remote project list.
type Project struct {
	// ID is stable for the lifetime of the project.
	ID ID `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Command is the user-supplied instruction describing the work.
	Command string `json:"command"`

	// Status drives the icon and the available actions.
	Status Status `json:"status"`

	// GithubURL links to the generated source, if any.
	GithubURL string `json:"github_url,omitempty"`

	// CreatedAt is the creation timestamp as sent by the service.
	CreatedAt string `json:"created_at"`
}

// HasCode reports whether a "View Code" link can be offered.
func (p Project) HasCode() bool {
	return p.GithubURL != ""
}
