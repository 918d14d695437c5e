// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lab-console CLI.
// Implements: prd010-admin-client, prd011-console-search,
//             prd012-console-overview, prd014-offline-snapshot (CLI surface).
// See docs/ARCHITECTURE § Console Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lab-console/internal/auth"
	"github.com/pdiddy/lab-console/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the lab-console CLI.
var rootCmd = &cobra.Command{
	Use:   "lab-console",
	Short: "Admin console for the Innovation Lab backend",
	Long: `lab-console administers the Innovation Lab's publications, research,
programs, and events over the backend REST API. Reads are anonymous;
mutations use the bearer token stored under the credentials directory.

Each concern is a subcommand: the entity commands manage one collection,
search aggregates suggestions across collections, overview summarizes
recent activity, and snapshot keeps an offline SQLite copy.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lab-console.yaml or ~/.config/lab-console/config.yaml)")
	rootCmd.PersistentFlags().String("api-base", "", "origin for the programs/research API (default: hosted backend)")
	rootCmd.PersistentFlags().String("publications-base", "", "publications collection URL override")
	rootCmd.PersistentFlags().String("events-base", "", "events collection URL override")
	rootCmd.PersistentFlags().String("credentials-dir", ".credentials", "directory holding the bearer token file")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP timeout (0 = none)")

	viper.BindPFlag("api_base", rootCmd.PersistentFlags().Lookup("api-base"))
	viper.BindPFlag("publications_base", rootCmd.PersistentFlags().Lookup("publications-base"))
	viper.BindPFlag("events_base", rootCmd.PersistentFlags().Lookup("events-base"))
	viper.BindPFlag("credentials_dir", rootCmd.PersistentFlags().Lookup("credentials-dir"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lab-console")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lab-console"))
		}
	}

	viper.SetEnvPrefix("LAB_CONSOLE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// consoleConfig assembles the configuration from viper (flags, env,
// config file, in that precedence).
func consoleConfig() types.ConsoleConfig {
	return types.ConsoleConfig{
		HTTP: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		Endpoints: types.EndpointConfig{
			APIBase:          viper.GetString("api_base"),
			PublicationsBase: viper.GetString("publications_base"),
			EventsBase:       viper.GetString("events_base"),
		},
		Search: types.SearchConfig{
			MinQueryLength: viper.GetInt("search.min_query_length"),
			MaxSuggestions: viper.GetInt("search.max_suggestions"),
			DebounceDelay:  viper.GetDuration("search.debounce_delay"),
		},
		Overview: types.OverviewConfig{
			Window:        viper.GetDuration("overview.window"),
			TimelineLimit: viper.GetInt("overview.timeline_limit"),
		},
		Snapshot: types.SnapshotConfig{
			Dir: snapshotDir(),
		},
		CredentialsDir: credentialsDir(),
	}
}

func credentialsDir() string {
	if dir := viper.GetString("credentials_dir"); dir != "" {
		return dir
	}
	return ".credentials"
}

func snapshotDir() string {
	if dir := viper.GetString("snapshot.dir"); dir != "" {
		return dir
	}
	return "snapshot"
}

// credentials returns the token store for the configured directory.
func credentials() *auth.TokenStore {
	return &auth.TokenStore{Dir: credentialsDir()}
}

// overviewWindow is exposed for flag defaults.
const overviewWindow = 7 * 24 * time.Hour

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
