package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/olorin/nagiosplugin"
	"github.com/spf13/cobra"

	"github.com/yarncheck/check-yarn-rm/internal/check"
	"github.com/yarncheck/check-yarn-rm/internal/checks"
	"github.com/yarncheck/check-yarn-rm/internal/checks/appstats"
	"github.com/yarncheck/check-yarn-rm/internal/checks/memory"
	"github.com/yarncheck/check-yarn-rm/internal/checks/nodemanagers"
	"github.com/yarncheck/check-yarn-rm/internal/jmx"
)

// modeFlags are the mutually exclusive check selector flags.
var modeFlags = []string{"node-managers", "app-stats", "heap-used", "non-heap-used"}

func run(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetBool("version"); v {
		fmt.Printf("check_yarn_rm version %s\n", Version)
		return nil
	}
	if describe, _ := cmd.Flags().GetBool("describe"); describe {
		return json.NewEncoder(os.Stdout).Encode(checks.GetAllDescriptions())
	}

	setupLogging(cmd)

	mode, err := selectMode(cmd)
	if err != nil {
		return err
	}
	host := getHost(cmd)
	if host == "" {
		return errors.New("--host is required (or set HADOOP_YARN_RESOURCE_MANAGER_HOST)")
	}
	port, err := getPort(cmd)
	if err != nil {
		return err
	}
	warning, critical, err := getThresholds(cmd, mode)
	if err != nil {
		return err
	}

	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	timeout := time.Duration(timeoutSecs) * time.Second
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client := jmx.NewClient(host, port)
	if user, password := getCredentials(cmd); user != "" {
		client.SetBasicAuth(user, password)
	}

	nagios := nagiosplugin.NewCheck()
	defer nagios.Finish()

	result, err := runCheck(ctx, client, mode, warning, critical)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s querying '%s'", timeout, client.URL())
		}
		nagios.Unknownf("%v", err)
	}

	report(nagios, result)
	return nil
}

// selectMode enforces that exactly one mode flag is set, before any
// network activity.
func selectMode(cmd *cobra.Command) (string, error) {
	var set []string
	for _, name := range modeFlags {
		if on, _ := cmd.Flags().GetBool(name); on {
			set = append(set, name)
		}
	}
	if len(set) != 1 {
		return "", errors.New("exactly one of --node-managers, --app-stats, --heap-used, --non-heap-used must be given")
	}
	return set[0], nil
}

// getThresholds applies the mode's defaults and parses the ranges. The
// app-stats mode is informational and takes no thresholds.
func getThresholds(cmd *cobra.Command, mode string) (warning, critical *nagiosplugin.Range, err error) {
	if mode == appstats.Name {
		return nil, nil, nil
	}

	warnSpec, _ := cmd.Flags().GetString("warning")
	critSpec, _ := cmd.Flags().GetString("critical")
	if warnSpec == "" {
		warnSpec = defaultWarning(mode)
	}
	if critSpec == "" {
		critSpec = defaultCritical(mode)
	}

	warning, err = nagiosplugin.ParseRange(warnSpec)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --warning range %q: %w", warnSpec, err)
	}
	critical, err = nagiosplugin.ParseRange(critSpec)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --critical range %q: %w", critSpec, err)
	}
	return warning, critical, nil
}

func defaultWarning(mode string) string {
	if mode == nodemanagers.Name {
		return nodemanagers.DefaultWarning
	}
	return memory.DefaultWarning
}

func defaultCritical(mode string) string {
	if mode == nodemanagers.Name {
		return nodemanagers.DefaultCritical
	}
	return memory.DefaultCritical
}

func runCheck(ctx context.Context, client *jmx.Client, mode string, warning, critical *nagiosplugin.Range) (*check.Result, error) {
	switch mode {
	case nodemanagers.Name:
		return nodemanagers.Run(ctx, client, warning, critical)
	case appstats.Name:
		return appstats.Run(ctx, client)
	case "heap-used":
		return memory.Run(ctx, client, memory.Heap, warning, critical)
	case "non-heap-used":
		return memory.Run(ctx, client, memory.NonHeap, warning, critical)
	}
	return nil, fmt.Errorf("unknown check mode %q", mode)
}

func report(nagios *nagiosplugin.Check, result *check.Result) {
	for _, pd := range result.Perfdata {
		if err := nagios.AddPerfDatum(pd.Label, pd.Unit, pd.Value, pd.Thresholds...); err != nil {
			nagios.Unknownf("bad perfdata %s: %v", pd.Label, err)
		}
	}
	nagios.AddResult(result.Status, result.Message)
}
