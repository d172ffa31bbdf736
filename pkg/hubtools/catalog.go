package hubtools

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/germanamz/hubmcp/pkg/hub"
	"github.com/google/jsonschema-go/jsonschema"
)

// Tool names.
const (
	DeviceControl        = "device_control"
	SensorDataRetrieval  = "sensor_data_retrieval"
	AutomationManagement = "automation_management"
	StateMonitoring      = "state_monitoring"
	NotificationHandling = "notification_handling"
	ServiceCall          = "service_call"
	EventListening       = "event_listening"
)

// Field describes one property of a tool's arguments.
type Field struct {
	Name        string
	Type        string // JSON Schema type: "string" or "object".
	Description string
	Required    bool
	Enum        []any
}

// Descriptor describes a cataloged tool.
type Descriptor struct {
	Name        string
	Description string
	Label       string // Prefix of the success text.
	Fields      []Field
}

// Required returns the names of the required fields in declaration order.
func (d Descriptor) Required() []string {
	var names []string
	for _, f := range d.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Optional returns the names of the optional fields in declaration order.
func (d Descriptor) Optional() []string {
	var names []string
	for _, f := range d.Fields {
		if !f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Schema returns the JSON Schema of the tool's arguments.
func (d Descriptor) Schema() json.RawMessage {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(d.Fields)),
		Required:   d.Required(),
	}

	for _, f := range d.Fields {
		s.Properties[f.Name] = &jsonschema.Schema{
			Type:        f.Type,
			Description: f.Description,
			Enum:        f.Enum,
		}
	}

	data, err := json.Marshal(s)
	if err != nil {
		// Fields are static strings; this cannot fail.
		panic(fmt.Sprintf("hubtools: marshal schema for %s: %v", d.Name, err))
	}

	return data
}

// buildFunc decodes raw arguments and maps them to a hub request.
type buildFunc func(raw json.RawMessage) (hub.Request, error)

type entry struct {
	Descriptor
	build buildFunc
}

var (
	entityIDField = func(desc string) Field {
		return Field{Name: "entity_id", Type: "string", Description: desc, Required: true}
	}
	serviceDataField = Field{Name: "service_data", Type: "object", Description: "Additional service data"}
)

// catalog is the fixed, ordered tool table.
var catalog = []entry{
	{
		Descriptor: Descriptor{
			Name:        DeviceControl,
			Description: "Control hub devices such as lights, switches, and thermostats",
			Label:       "Device control result",
			Fields: []Field{
				entityIDField("Entity ID of the device"),
				{Name: "service", Type: "string", Description: "Service to call as <domain>.<action> (e.g., light.turn_on)", Required: true},
				serviceDataField,
			},
		},
		build: bind[deviceControlArgs](DeviceControl),
	},
	{
		Descriptor: Descriptor{
			Name:        SensorDataRetrieval,
			Description: "Retrieve sensor data from the hub",
			Label:       "Sensor data",
			Fields:      []Field{entityIDField("Entity ID of the sensor")},
		},
		build: bind[entityArgs](SensorDataRetrieval),
	},
	{
		Descriptor: Descriptor{
			Name:        AutomationManagement,
			Description: "Manage hub automations (create, modify, delete)",
			Label:       "Automation management result",
			Fields: []Field{
				{Name: "action", Type: "string", Description: "Action to perform (create, modify, delete)", Required: true, Enum: []any{"create", "modify", "delete"}},
				{Name: "automation_id", Type: "string", Description: "ID of the automation (used by modify and delete)"},
				{Name: "automation_data", Type: "object", Description: "Automation data (used by create and modify)"},
			},
		},
		build: bind[automationArgs](AutomationManagement),
	},
	{
		Descriptor: Descriptor{
			Name:        StateMonitoring,
			Description: "Monitor the state of hub entities",
			Label:       "State monitoring result",
			Fields:      []Field{entityIDField("Entity ID of the entity to monitor")},
		},
		build: bind[entityArgs](StateMonitoring),
	},
	{
		Descriptor: Descriptor{
			Name:        NotificationHandling,
			Description: "Send notifications through the hub's notification system",
			Label:       "Notification handling result",
			Fields: []Field{
				{Name: "message", Type: "string", Description: "Notification message", Required: true},
				{Name: "title", Type: "string", Description: "Notification title"},
				{Name: "target", Type: "string", Description: "Notification target"},
			},
		},
		build: bind[notificationArgs](NotificationHandling),
	},
	{
		Descriptor: Descriptor{
			Name:        ServiceCall,
			Description: "Call hub services to perform various actions",
			Label:       "Service call result",
			Fields: []Field{
				{Name: "service", Type: "string", Description: "Service to call as <domain>.<action>", Required: true},
				serviceDataField,
			},
		},
		build: bind[serviceCallArgs](ServiceCall),
	},
	{
		Descriptor: Descriptor{
			Name:        EventListening,
			Description: "Listen for and respond to events within the hub",
			Label:       "Event listening result",
			Fields: []Field{
				{Name: "event_type", Type: "string", Description: "Type of event to listen for", Required: true},
			},
		},
		build: bind[eventArgs](EventListening),
	},
}

// bind returns a buildFunc that decodes into A, validates, and maps it.
func bind[A arguments](tool string) buildFunc {
	return func(raw json.RawMessage) (hub.Request, error) {
		var args A
		if err := json.Unmarshal(raw, &args); err != nil {
			return hub.Request{}, &ArgumentError{Tool: tool, Err: err}
		}

		if err := args.validate(); err != nil {
			return hub.Request{}, withTool(tool, err)
		}

		req, err := args.request()
		if err != nil {
			return hub.Request{}, withTool(tool, err)
		}

		return req, nil
	}
}

func withTool(tool string, err error) error {
	var ae *ArgumentError
	if errors.As(err, &ae) && ae.Tool == "" {
		ae.Tool = tool
	}
	return err
}

// Catalog returns the descriptors of all tools in catalog order.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	for i, e := range catalog {
		out[i] = e.Descriptor
		out[i].Fields = slices.Clone(e.Fields)
	}
	return out
}

// Request decodes args for the named tool and returns the hub request the
// tool would send, without sending it.
func Request(name string, args json.RawMessage) (hub.Request, error) {
	for _, e := range catalog {
		if e.Name == name {
			return e.build(args)
		}
	}

	return hub.Request{}, fmt.Errorf("Unknown tool: %s", name) //nolint:staticcheck // same text as the unknown-tool envelope
}
