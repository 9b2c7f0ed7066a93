package controllers

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addDiscoveryFlags registers the flags shared by every command that scans files.
func addDiscoveryFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("paths", nil, "Include globs (default: every supported file type)")
	cmd.Flags().StringSlice("ignore", nil, "Extra globs to exclude")
	cmd.Flags().Bool("follow-symlinks", false, "Follow symbolic links while discovering files")
}

// stringFlag returns the flag value when it was set, otherwise fallback.
func stringFlag(flags *pflag.FlagSet, name, fallback string) string {
	if flag := flags.Lookup(name); flag != nil && flag.Changed {
		value, _ := flags.GetString(name)
		return value
	}
	return fallback
}

func boolFlag(flags *pflag.FlagSet, name string, fallback bool) bool {
	if flag := flags.Lookup(name); flag != nil && flag.Changed {
		value, _ := flags.GetBool(name)
		return value
	}
	return fallback
}

func sliceFlag(flags *pflag.FlagSet, name string, fallback []string) []string {
	if flag := flags.Lookup(name); flag != nil && flag.Changed {
		value, _ := flags.GetStringSlice(name)
		return value
	}
	return fallback
}
