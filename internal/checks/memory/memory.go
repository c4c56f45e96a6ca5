// Package memory provides the JVM heap and non-heap memory usage checks.
package memory

import (
	"context"
	"fmt"
	"math"

	units "github.com/docker/go-units"
	"github.com/olorin/nagiosplugin"

	"github.com/yarncheck/check-yarn-rm/internal/check"
	"github.com/yarncheck/check-yarn-rm/internal/jmx"
)

// MBean is the memory MXBean name, shared by both areas.
const MBean = "java.lang:type=Memory"

// Default thresholds for the used percentage.
const (
	DefaultWarning  = "80"
	DefaultCritical = "90"
)

// Area selects which memory pool the check reads.
type Area string

const (
	Heap    Area = "heap"
	NonHeap Area = "non-heap"
)

func (a Area) field() string {
	if a == NonHeap {
		return "NonHeapMemoryUsage"
	}
	return "HeapMemoryUsage"
}

func (a Area) prefix() string {
	if a == NonHeap {
		return "non_heap"
	}
	return "heap"
}

// GetDescription returns the check description for the given area.
func GetDescription(area Area) check.Description {
	return check.Description{
		Name:            fmt.Sprintf("%s-used", area),
		Description:     fmt.Sprintf("Check Resource Manager JVM %s memory usage", area),
		MBean:           MBean,
		DefaultWarning:  DefaultWarning,
		DefaultCritical: DefaultCritical,
	}
}

// Run executes the memory check for the given area. The used percentage is
// rounded to two decimals before it is compared to the thresholds.
func Run(ctx context.Context, client *jmx.Client, area Area, warning, critical *nagiosplugin.Range) (*check.Result, error) {
	bean, err := client.FindBean(ctx, MBean)
	if err != nil {
		return nil, err
	}

	field := area.field()
	used, err := bean.Int(field + ".used")
	if err != nil {
		return nil, err
	}
	max, err := bean.Int(field + ".max")
	if err != nil {
		return nil, err
	}
	committed, err := bean.Int(field + ".committed")
	if err != nil {
		return nil, err
	}

	if max <= 0 {
		return nil, fmt.Errorf("mbean '%s' reports non-positive %s.max", MBean, field)
	}
	usedPct := math.Round(float64(used)/float64(max)*10000) / 100

	prefix := area.prefix()
	return &check.Result{
		Status: check.Classify(usedPct, warning, critical),
		Message: fmt.Sprintf("%.2f%% %s used (%s of %s)",
			usedPct, area, units.HumanSize(float64(used)), units.HumanSize(float64(max))),
		Perfdata: []check.Perfdatum{
			{Label: prefix + "_used", Unit: "B", Value: float64(used), Thresholds: []float64{0, float64(max)}},
			{Label: prefix + "_committed", Unit: "B", Value: float64(committed), Thresholds: []float64{0, float64(max)}},
			{Label: prefix + "_max", Unit: "B", Value: float64(max)},
			{Label: prefix + "_used_pct", Unit: "%", Value: usedPct, Thresholds: []float64{0, 100}},
		},
	}, nil
}
