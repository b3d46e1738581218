package dsp

import (
	"fmt"
	"strings"
)

// ConfigError reports a filter or segmentation strategy built without
// usable parameters.
type ConfigError struct {
	Component string   // strategy or filter name
	Missing   []string // required parameters that were not given
	Reason    string   // what is wrong with the given ones
}

func (e *ConfigError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: missing parameter(s): %s",
			e.Component, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Component, e.Reason)
}

func missingParams(component string, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	return &ConfigError{Component: component, Missing: names}
}

func invalidParam(component, format string, args ...interface{}) error {
	return &ConfigError{Component: component, Reason: fmt.Sprintf(format, args...)}
}

// Int returns a pointer to v, for building parameter structs.
func Int(v int) *int {
	return &v
}

// Float returns a pointer to v, for building parameter structs.
func Float(v float64) *float64 {
	return &v
}
