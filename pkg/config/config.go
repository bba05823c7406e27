// Package config provides the small bootstrap helpers shared by the
// worker and executer binaries: flag-or-environment-variable resolution,
// following the original source's reliance on environment variables
// (original_source/executer/src/main.rs reads PARTITIONER_IP) combined
// with the teacher's cobra-flag style (cmd/warren/main.go).
package config

import (
	"os"

	"github.com/spf13/cobra"
)

// StringOrEnv returns the value bound to flagName if the user set it
// explicitly on the command line; otherwise it falls back to envName,
// then to the flag's own default value, and to def only when that
// default is empty.
func StringOrEnv(cmd *cobra.Command, flagName, envName, def string) string {
	if cmd.Flags().Changed(flagName) {
		v, _ := cmd.Flags().GetString(flagName)
		return v
	}
	if v, ok := os.LookupEnv(envName); ok && v != "" {
		return v
	}
	v, _ := cmd.Flags().GetString(flagName)
	if v != "" {
		return v
	}
	return def
}
