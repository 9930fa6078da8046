package report

import "fmt"

// ConfigError reports a required input that was not supplied before the
// operation that needs it.
type ConfigError struct {
	Option string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("report: %s not configured", e.Option)
}

// StateError reports an operation invoked outside its lifecycle stage.
type StateError struct {
	Op    string
	Stage string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("report: cannot %s in stage %q", e.Op, e.Stage)
}
