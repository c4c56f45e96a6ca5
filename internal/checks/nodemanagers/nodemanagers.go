// Package nodemanagers provides the cluster node-manager health check.
package nodemanagers

import (
	"context"
	"fmt"

	"github.com/olorin/nagiosplugin"

	"github.com/yarncheck/check-yarn-rm/internal/check"
	"github.com/yarncheck/check-yarn-rm/internal/jmx"
)

// Name is the check mode name.
const Name = "node-managers"

// MBean is the cluster metrics bean of the Resource Manager.
const MBean = "Hadoop:service=ResourceManager,name=ClusterMetrics"

// Default thresholds for the unhealthy node-manager count.
const (
	DefaultWarning  = "0"
	DefaultCritical = "0"
)

// GetDescription returns the check description.
func GetDescription() check.Description {
	return check.Description{
		Name:            Name,
		Description:     "Check the number of unhealthy YARN node managers",
		MBean:           MBean,
		DefaultWarning:  DefaultWarning,
		DefaultCritical: DefaultCritical,
	}
}

// Run executes the node-manager health check. The unhealthy count is the
// value compared to the thresholds.
func Run(ctx context.Context, client *jmx.Client, warning, critical *nagiosplugin.Range) (*check.Result, error) {
	bean, err := client.FindBean(ctx, MBean)
	if err != nil {
		return nil, err
	}

	active, err := bean.Int("NumActiveNMs")
	if err != nil {
		return nil, err
	}
	decommissioned, err := bean.Int("NumDecommissionedNMs")
	if err != nil {
		return nil, err
	}
	lost, err := bean.Int("NumLostNMs")
	if err != nil {
		return nil, err
	}
	unhealthy, err := bean.Int("NumUnhealthyNMs")
	if err != nil {
		return nil, err
	}
	// TODO: rebooted is sourced from NumUnhealthyNMs rather than the bean's
	// NumRebootedNMs counter; confirm downstream consumers before switching.
	rebooted := unhealthy

	return &check.Result{
		Status:  check.Classify(float64(unhealthy), warning, critical),
		Message: fmt.Sprintf("%d active node managers, %d unhealthy", active, unhealthy),
		Perfdata: []check.Perfdatum{
			{Label: "active_nms", Value: float64(active)},
			{Label: "decommissioned_nms", Value: float64(decommissioned)},
			{Label: "lost_nms", Value: float64(lost)},
			{Label: "unhealthy_nms", Value: float64(unhealthy)},
			{Label: "rebooted_nms", Value: float64(rebooted)},
		},
	}, nil
}
