package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"plcst/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the summary cache",
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCacheAnyway(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.Dir())
		return nil
	},
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCacheAnyway(cmd)
		if err != nil {
			return err
		}
		if err := c.DropAll(); err != nil {
			return err
		}
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", c.Dir())
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheDirCmd, cacheCleanCmd)
}

// openCacheAnyway ignores whether the cache is enabled; only its location matters here.
func openCacheAnyway(cmd *cobra.Command) (*driver.DiskCache, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	s.cache = true
	return s.openCache()
}
