package hubtools

import (
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"github.com/germanamz/hubmcp/pkg/hub"
)

// arguments is implemented by every per-tool argument record.
type arguments interface {
	// validate reports the first missing required field.
	validate() error
	// request maps the record to its hub request.
	request() (hub.Request, error)
}

// --- device_control ---

type deviceControlArgs struct {
	EntityID    string         `json:"entity_id"`
	Service     string         `json:"service"`
	ServiceData map[string]any `json:"service_data"`
}

func (a deviceControlArgs) validate() error {
	if a.EntityID == "" {
		return missing("entity_id")
	}
	if a.Service == "" {
		return missing("service")
	}
	return nil
}

func (a deviceControlArgs) request() (hub.Request, error) {
	path, err := servicePath(a.Service)
	if err != nil {
		return hub.Request{}, err
	}

	body := map[string]any{"entity_id": a.EntityID}
	maps.Copy(body, a.ServiceData)

	return hub.Request{Method: http.MethodPost, Path: path, Body: body}, nil
}

// --- sensor_data_retrieval, state_monitoring ---

type entityArgs struct {
	EntityID string `json:"entity_id"`
}

func (a entityArgs) validate() error {
	if a.EntityID == "" {
		return missing("entity_id")
	}
	return nil
}

func (a entityArgs) request() (hub.Request, error) {
	return hub.Request{Method: http.MethodGet, Path: "/api/states/" + url.PathEscape(a.EntityID)}, nil
}

// --- automation_management ---

const automationPath = "/api/services/automation/"

type automationArgs struct {
	Action         string         `json:"action"`
	AutomationID   string         `json:"automation_id"`
	AutomationData map[string]any `json:"automation_data"`
}

func (a automationArgs) validate() error {
	if a.Action == "" {
		return missing("action")
	}
	return nil
}

func (a automationArgs) request() (hub.Request, error) {
	var body any

	switch a.Action {
	case "create":
		body = objectBody(a.AutomationData)
	case "modify":
		m := a.withID()
		maps.Copy(m, a.AutomationData)
		body = m
	case "delete":
		body = a.withID()
	default:
		return hub.Request{}, &InvalidActionError{Action: a.Action}
	}

	return hub.Request{Method: http.MethodPost, Path: automationPath + a.Action, Body: body}, nil
}

// withID returns {automation_id} or an empty object when no ID was given.
func (a automationArgs) withID() map[string]any {
	m := make(map[string]any, len(a.AutomationData)+1)
	if a.AutomationID != "" {
		m["automation_id"] = a.AutomationID
	}
	return m
}

// --- notification_handling ---

type notificationArgs struct {
	Message string `json:"message"`
	Title   string `json:"title,omitempty"`
	Target  string `json:"target,omitempty"`
}

func (a notificationArgs) validate() error {
	if a.Message == "" {
		return missing("message")
	}
	return nil
}

func (a notificationArgs) request() (hub.Request, error) {
	return hub.Request{Method: http.MethodPost, Path: "/api/services/notify", Body: a}, nil
}

// --- service_call ---

type serviceCallArgs struct {
	Service     string         `json:"service"`
	ServiceData map[string]any `json:"service_data"`
}

func (a serviceCallArgs) validate() error {
	if a.Service == "" {
		return missing("service")
	}
	return nil
}

func (a serviceCallArgs) request() (hub.Request, error) {
	path, err := servicePath(a.Service)
	if err != nil {
		return hub.Request{}, err
	}

	return hub.Request{Method: http.MethodPost, Path: path, Body: objectBody(a.ServiceData)}, nil
}

// --- event_listening ---

type eventArgs struct {
	EventType string `json:"event_type"`
}

func (a eventArgs) validate() error {
	if a.EventType == "" {
		return missing("event_type")
	}
	return nil
}

func (a eventArgs) request() (hub.Request, error) {
	return hub.Request{Method: http.MethodGet, Path: "/api/events/" + url.PathEscape(a.EventType)}, nil
}

// --- helpers ---

// servicePath splits a "<domain>.<action>" service on its first dot.
func servicePath(service string) (string, error) {
	domain, action, ok := strings.Cut(service, ".")
	if !ok || domain == "" || action == "" {
		return "", &ArgumentError{
			Field: "service",
			Err:   fmt.Errorf("must be <domain>.<action>, got %q", service),
		}
	}

	return "/api/services/" + url.PathEscape(domain) + "/" + url.PathEscape(action), nil
}

// objectBody keeps an absent object argument from being sent as JSON null.
func objectBody(m map[string]any) any {
	if m == nil {
		return nil
	}
	return m
}
