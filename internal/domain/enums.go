package domain

// EventType classifies the outcome semantics of a dictionary event.
type EventType string

const (
	EventTypeIntent  EventType = "intent"
	EventTypeSuccess EventType = "success"
	EventTypeFailure EventType = "failure"
)

// ValidEventTypes is the closed enumeration for EventType coercion.
var ValidEventTypes = map[EventType]bool{
	EventTypeIntent:  true,
	EventTypeSuccess: true,
	EventTypeFailure: true,
}

// ActionType classifies how an event is emitted by instrumentation.
type ActionType string

const (
	ActionTypeAction      ActionType = "action"
	ActionTypeError       ActionType = "error"
	ActionTypeFeatureFlag ActionType = "feature_flag"
)

// ValidActionTypes is the closed enumeration for ActionType coercion.
var ValidActionTypes = map[ActionType]bool{
	ActionTypeAction:      true,
	ActionTypeError:       true,
	ActionTypeFeatureFlag: true,
}

// PropertyType is the allowed type tag for an event property.
type PropertyType string

const (
	PropertyTypeString   PropertyType = "string"
	PropertyTypeNumber   PropertyType = "number"
	PropertyTypeBoolean  PropertyType = "boolean"
	PropertyTypeEnum     PropertyType = "enum"
	PropertyTypeObject   PropertyType = "object"
	PropertyTypeArray    PropertyType = "array"
	PropertyTypeDatetime PropertyType = "datetime"
)

// ValidPropertyTypes is the closed enumeration for property type coercion.
var ValidPropertyTypes = map[PropertyType]bool{
	PropertyTypeString:   true,
	PropertyTypeNumber:   true,
	PropertyTypeBoolean:  true,
	PropertyTypeEnum:     true,
	PropertyTypeObject:   true,
	PropertyTypeArray:    true,
	PropertyTypeDatetime: true,
}

// LifecycleStatus is the event's maturity stage in the approval workflow,
// orthogonal to EventType.
type LifecycleStatus string

const (
	LifecycleProposed    LifecycleStatus = "proposed"
	LifecycleApproved    LifecycleStatus = "approved"
	LifecycleImplemented LifecycleStatus = "implemented"
	LifecycleDeprecated  LifecycleStatus = "deprecated"
)

// ValidLifecycleStatuses is the closed enumeration for lifecycle coercion.
var ValidLifecycleStatuses = map[LifecycleStatus]bool{
	LifecycleProposed:    true,
	LifecycleApproved:    true,
	LifecycleImplemented: true,
	LifecycleDeprecated:  true,
}

// APIBinding names the telemetry-emission function an event should invoke.
// Inferred by the normalizer in most inputs.
type APIBinding string

const (
	BindingAddAction      APIBinding = "addAction"
	BindingAddError       APIBinding = "addError"
	BindingAddFeatureFlag APIBinding = "addFeatureFlagEvaluation"
)

// ValidAPIBindings is the closed enumeration for explicitly supplied bindings.
var ValidAPIBindings = map[APIBinding]bool{
	BindingAddAction:      true,
	BindingAddError:       true,
	BindingAddFeatureFlag: true,
}
