package instrumentation

import "testing"

func TestNormalizeHTTPPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/", "/"},
		{"/events", "/events"},
		{"/api/events", "/api/events"},
		{"/api/events/3f2a9c1e-77d4-4e21-9a1b-0c8d2e4f6a8b", "/api/events/:id"},
		{"/api/events/date/2026-03-14", "/api/events/date/:date"},
		{"/api/settings", "/api/settings"},
		{"/static/app.css", "/static/*"},
		{"/static/js/app.js", "/static/*"},
		{"/healthz", "/healthz"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result := NormalizeHTTPPath(tt.path)
			if result != tt.expected {
				t.Errorf("NormalizeHTTPPath(%q) = %q, want %q", tt.path, result, tt.expected)
			}
		})
	}
}

func TestOperationConstants(t *testing.T) {
	operations := map[string]string{
		OperationList:   "list",
		OperationGet:    "get",
		OperationAdd:    "add",
		OperationRemove: "remove",
		OperationSync:   "sync",
	}

	for constant, expected := range operations {
		if constant != expected {
			t.Errorf("Operation constant = %q, want %q", constant, expected)
		}
	}
}
