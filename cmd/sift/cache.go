package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sift/internal/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the lint result cache",
	}
	cmd.AddCommand(newCacheCleanCmd())
	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	var location string
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the cache file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			path, err := cache.ResolveLocation(location, cwd)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "cache file not found")
				return nil
			}
			if err := cache.Delete(path); err != nil {
				return fmt.Errorf("failed to remove %q: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&location, "cache-location", "", "cache file or directory (default .siftcache)")
	return cmd
}
