package jmx

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Bean is one entry of the /jmx beans array. Fields are addressed by
// dotted paths, e.g. "HeapMemoryUsage.used".
type Bean struct {
	raw gjson.Result
}

// Name returns the bean's JMX object name.
func (b *Bean) Name() string {
	return b.raw.Get("name").String()
}

// Int returns the integer field at path.
func (b *Bean) Int(path string) (int64, error) {
	result := b.raw.Get(path)
	if !result.Exists() {
		return 0, fmt.Errorf("mbean '%s' has no field '%s'", b.Name(), path)
	}
	return result.Int(), nil
}

// Float returns the floating-point field at path.
func (b *Bean) Float(path string) (float64, error) {
	result := b.raw.Get(path)
	if !result.Exists() {
		return 0, fmt.Errorf("mbean '%s' has no field '%s'", b.Name(), path)
	}
	return result.Float(), nil
}
