package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"github.com/mind-engage/mindengage-bac/internal/catalog"
	"github.com/mind-engage/mindengage-bac/internal/config"
	_ "github.com/mind-engage/mindengage-bac/internal/formats/bac"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:          "bacprepd",
	Short:        "Baccalaureate exam prep: scoring, sessions and reports",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.FromEnv()
		if paths, _ := cmd.Flags().GetStringSlice("catalog"); len(paths) > 0 {
			cfg.CatalogPaths = paths
		}
		setupLogging(cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "bacprepd", version)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringSlice("catalog", nil, "Catalog bundle files (overrides CATALOG_PATH)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(flattenCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogging(c config.Config) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.SetOutput(logWriter(c, os.Stderr))
}

// logWriter tees console into a rotating file when LOG_FILE is set.
func logWriter(c config.Config, console io.Writer) io.Writer {
	if c.LogFile == "" {
		return console
	}
	return io.MultiWriter(console, &lumberjack.Logger{
		Filename:   c.LogFile,
		MaxSize:    c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAge:     c.LogMaxAgeDays,
		Compress:   true,
	})
}

func loadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogPaths...)
	if err != nil {
		return nil, err
	}
	log.Printf("catalog %s loaded from %v", cat.Version(), cfg.CatalogPaths)
	return cat, nil
}

// readFile decodes a JSON or YAML file (by extension) into v. "-" reads
// JSON from stdin.
func readFile(path string, stdin io.Reader, v any) error {
	if path == "-" {
		return json.NewDecoder(stdin).Decode(v)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if catalog.FormatFromPath(path) == catalog.FormatYAML {
		return yaml.NewDecoder(f).Decode(v)
	}
	return json.NewDecoder(f).Decode(v)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
