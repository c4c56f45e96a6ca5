// Package appstats provides the root-queue application statistics check.
//
// This mode is informational: it never evaluates thresholds and reports OK
// whenever the metrics can be extracted.
package appstats

import (
	"context"
	"fmt"

	"github.com/olorin/nagiosplugin"

	"github.com/yarncheck/check-yarn-rm/internal/check"
	"github.com/yarncheck/check-yarn-rm/internal/jmx"
)

// Name is the check mode name.
const Name = "app-stats"

// MBean is the root queue metrics bean of the Resource Manager.
const MBean = "Hadoop:service=ResourceManager,name=QueueMetrics,q0=root"

// GetDescription returns the check description.
func GetDescription() check.Description {
	return check.Description{
		Name:        Name,
		Description: "Report YARN root-queue application statistics",
		MBean:       MBean,
	}
}

// Run executes the application statistics check.
func Run(ctx context.Context, client *jmx.Client) (*check.Result, error) {
	bean, err := client.FindBean(ctx, MBean)
	if err != nil {
		return nil, err
	}

	var apps [6]int64
	for i, field := range [...]string{
		"AppsSubmitted", "AppsRunning", "AppsPending",
		"AppsCompleted", "AppsKilled", "AppsFailed",
	} {
		if apps[i], err = bean.Int(field); err != nil {
			return nil, err
		}
	}
	availableMB, err := bean.Float("AvailableMB")
	if err != nil {
		return nil, err
	}
	activeUsers, err := bean.Int("ActiveUsers")
	if err != nil {
		return nil, err
	}
	activeApps, err := bean.Int("ActiveApplications")
	if err != nil {
		return nil, err
	}

	return &check.Result{
		Status: nagiosplugin.OK,
		Message: fmt.Sprintf("%d apps submitted, %d running, %d pending, %d completed, %d killed, %d failed",
			apps[0], apps[1], apps[2], apps[3], apps[4], apps[5]),
		Perfdata: []check.Perfdatum{
			{Label: "apps_submitted", Value: float64(apps[0])},
			{Label: "apps_running", Value: float64(apps[1])},
			{Label: "apps_pending", Value: float64(apps[2])},
			{Label: "apps_completed", Value: float64(apps[3])},
			{Label: "apps_killed", Value: float64(apps[4])},
			{Label: "apps_failed", Value: float64(apps[5])},
			{Label: "available_mb", Unit: "MB", Value: availableMB},
			{Label: "active_users", Value: float64(activeUsers)},
			{Label: "active_applications", Value: float64(activeApps)},
		},
	}, nil
}
