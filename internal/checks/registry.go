// Package checks provides the built-in check registry.
package checks

import (
	"github.com/yarncheck/check-yarn-rm/internal/check"
	"github.com/yarncheck/check-yarn-rm/internal/checks/appstats"
	"github.com/yarncheck/check-yarn-rm/internal/checks/memory"
	"github.com/yarncheck/check-yarn-rm/internal/checks/nodemanagers"
)

// GetAllDescriptions returns descriptions of all built-in checks.
func GetAllDescriptions() []check.Description {
	return []check.Description{
		nodemanagers.GetDescription(),
		appstats.GetDescription(),
		memory.GetDescription(memory.Heap),
		memory.GetDescription(memory.NonHeap),
	}
}
