package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X github.com/yarncheck/check-yarn-rm/cmd.Version=..."
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "check_yarn_rm",
	Short: "Nagios plugin checking a Hadoop YARN Resource Manager over JMX",
	Long: `check_yarn_rm queries the Resource Manager's /jmx endpoint and reports
node-manager health, root-queue application statistics, or JVM heap and
non-heap memory usage in the Nagios plugin protocol.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	registerFlags(rootCmd)
}

func registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("host", "H", "", "Resource Manager host (or HADOOP_YARN_RESOURCE_MANAGER_HOST)")
	cmd.Flags().IntP("port", "P", 8088, "Resource Manager HTTP port (or HADOOP_YARN_RESOURCE_MANAGER_PORT)")
	cmd.Flags().Bool("node-managers", false, "Check node-manager health")
	cmd.Flags().Bool("app-stats", false, "Report root-queue application statistics")
	cmd.Flags().Bool("heap-used", false, "Check JVM heap usage percentage")
	cmd.Flags().Bool("non-heap-used", false, "Check JVM non-heap usage percentage")
	cmd.Flags().StringP("warning", "w", "", "Warning threshold as a Nagios range (default depends on mode)")
	cmd.Flags().StringP("critical", "c", "", "Critical threshold as a Nagios range (default depends on mode)")
	cmd.Flags().IntP("timeout", "t", 10, "Overall timeout in seconds")
	cmd.Flags().String("user", "", "HTTP basic auth user")
	cmd.Flags().String("password", "", "HTTP basic auth password")
	cmd.Flags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolP("version", "v", false, "Print version and exit")
	cmd.Flags().Bool("describe", false, "Output built-in check descriptions as JSON array")
}

func setupLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	switch name, _ := cmd.Flags().GetString("log-level"); name {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func getHost(cmd *cobra.Command) string {
	host, _ := cmd.Flags().GetString("host")
	if host == "" {
		host = os.Getenv("HADOOP_YARN_RESOURCE_MANAGER_HOST")
	}
	if host == "" {
		host = os.Getenv("HADOOP_HOST")
	}
	return host
}

func getPort(cmd *cobra.Command) (int, error) {
	if cmd.Flags().Changed("port") {
		return cmd.Flags().GetInt("port")
	}
	for _, key := range []string{"HADOOP_YARN_RESOURCE_MANAGER_PORT", "HADOOP_PORT"} {
		if value := os.Getenv(key); value != "" {
			port, err := strconv.Atoi(value)
			if err != nil {
				return 0, fmt.Errorf("invalid port in %s: %q", key, value)
			}
			return port, nil
		}
	}
	return cmd.Flags().GetInt("port")
}

func getCredentials(cmd *cobra.Command) (user, password string) {
	user, _ = cmd.Flags().GetString("user")
	if user == "" {
		user = os.Getenv("HADOOP_YARN_RESOURCE_MANAGER_USER")
	}
	password, _ = cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv("HADOOP_YARN_RESOURCE_MANAGER_PASSWORD")
	}
	return user, password
}
