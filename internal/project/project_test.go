package project

import (
	"encoding/json"
	"testing"
)

func TestStatus_Known(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusGenerating, true},
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusEditing, true},
		{Status("Queued"), false},
		{Status(""), false},
		{Status("completed"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Known(); got != tt.want {
			t.Errorf("Status(%q).Known() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatus_IsActive(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusGenerating, true},
		{StatusEditing, true},
		{StatusCompleted, false},
		{StatusFailed, false},
		{Status("Queued"), false},
	}

	for _, tt := range tests {
		if got := tt.status.IsActive(); got != tt.want {
			t.Errorf("Status(%q).IsActive() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatus_Editable(t *testing.T) {
	for _, s := range []Status{StatusGenerating, StatusEditing, StatusFailed, Status("Queued")} {
		if s.Editable() {
			t.Errorf("Status(%q).Editable() = true, want false", s)
		}
	}
	if !StatusCompleted.Editable() {
		t.Error("StatusCompleted.Editable() = false, want true")
	}
}

func TestProject_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  ID
		wantErr bool
	}{
		{
			name:   "numeric id",
			input:  `{"id": 42, "name": "demo", "status": "Completed"}`,
			wantID: "42",
		},
		{
			name:   "string id",
			input:  `{"id": "a1b2", "name": "demo"}`,
			wantID: "a1b2",
		},
		{
			name:   "null id",
			input:  `{"id": null}`,
			wantID: "",
		},
		{
			name:    "object id",
			input:   `{"id": {"x": 1}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Project
			err := json.Unmarshal([]byte(tt.input), &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && p.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", p.ID, tt.wantID)
			}
		})
	}
}

func TestProject_HasCode(t *testing.T) {
	if (Project{}).HasCode() {
		t.Error("HasCode() = true for project without github_url")
	}
	if !(Project{GithubURL: "https://github.com/acme/demo"}).HasCode() {
		t.Error("HasCode() = false for project with github_url")
	}
}

func TestProject_DecodeAllFields(t *testing.T) {
	input := `{
		"id": 7,
		"name": "todo-app",
		"command": "build a todo app",
		"status": "Failed",
		"github_url": "https://github.com/acme/todo",
		"created_at": "2024-03-01T10:15:00"
	}`

	var p Project
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := Project{
		ID:        "7",
		Name:      "todo-app",
		Command:   "build a todo app",
		Status:    StatusFailed,
		GithubURL: "https://github.com/acme/todo",
		CreatedAt: "2024-03-01T10:15:00",
	}
	if p != want {
		t.Errorf("decoded project = %+v, want %+v", p, want)
	}
}
