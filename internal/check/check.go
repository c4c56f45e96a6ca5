// Package check defines the shared result types for the built-in checks.
package check

import "github.com/olorin/nagiosplugin"

// Result is the standard outcome of one check execution.
type Result struct {
	Status   nagiosplugin.Status
	Message  string
	Perfdata []Perfdatum
}

// Perfdatum is a single performance data value. Thresholds are optional
// and ordered min, max, warn, crit, matching nagiosplugin.AddPerfDatum.
type Perfdatum struct {
	Label      string
	Unit       string
	Value      float64
	Thresholds []float64
}

// Description is the self-description format for checks.
type Description struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	MBean           string `json:"mbean"`
	DefaultWarning  string `json:"default_warning,omitempty"`
	DefaultCritical string `json:"default_critical,omitempty"`
}

// Classify compares a value against warning and critical ranges using
// standard upper-bound semantics: the critical range is consulted first,
// and a nil range never alerts.
func Classify(value float64, warning, critical *nagiosplugin.Range) nagiosplugin.Status {
	if critical != nil && critical.Check(value) {
		return nagiosplugin.CRITICAL
	}
	if warning != nil && warning.Check(value) {
		return nagiosplugin.WARNING
	}
	return nagiosplugin.OK
}
