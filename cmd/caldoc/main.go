package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/adocdev/caldoc/internal/assembler"
	"github.com/adocdev/caldoc/internal/config"
	"github.com/adocdev/caldoc/internal/parser"
	"github.com/adocdev/caldoc/internal/ui"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "caldoc [flags] <src-path>",
	Short: "Merge dated AsciiDoc documents into a calendar",
	Long: `Aggregates a directory tree of AsciiDoc documents into a single
combined document, newest :revdate: first, wrapped with a header and
footer and optionally filtered by an inclusive date range.

Relative :imagesdir: directives are rewritten so image references
still resolve from the merged document's location. Documents using
include:: are skipped entirely.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runMerge,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringP("output", "o", "", `Output path, "-" for stdout (default "calendar.adoc")`)
	rootCmd.Flags().String("header", "", "Header file (its contents go to the beginning of the output)")
	rootCmd.Flags().String("footer", "", "Footer file (its contents go to the end of the output)")
	rootCmd.Flags().String("start-date", "", "Start date (inclusive, YYYY-MM-DD)")
	rootCmd.Flags().String("end-date", "", "End date (inclusive, YYYY-MM-DD)")
	rootCmd.Flags().BoolP("interactive", "i", false, "Pick documents interactively before merging")
	rootCmd.Flags().BoolP("benchmark", "b", false, "Benchmark load time and exit")
	rootCmd.Flags().BoolP("version", "v", false, "Print version and exit")
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

func runMerge(cmd *cobra.Command, args []string) error {
	srcPath := args[0]

	if out, _ := cmd.Flags().GetString("output"); out != "" {
		config.SetOutput(out)
	}
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		config.SetInteractive(true)
	}

	var dateRange assembler.Range
	if s, _ := cmd.Flags().GetString("start-date"); s != "" {
		d, err := parser.ParseDate(s)
		if err != nil {
			return err
		}
		dateRange.Start = &d
	}
	if s, _ := cmd.Flags().GetString("end-date"); s != "" {
		d, err := parser.ParseDate(s)
		if err != nil {
			return err
		}
		dateRange.End = &d
	}

	header, err := flagText(cmd, "header", config.GetHeaderText())
	if err != nil {
		return err
	}
	footer, err := flagText(cmd, "footer", config.GetFooterText())
	if err != nil {
		return err
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("source directory does not exist")
		}
		return fmt.Errorf("%s: %w", srcPath, err)
	}

	benchmark, _ := cmd.Flags().GetBool("benchmark")
	start := time.Now()

	p := parser.NewParser()
	var docs []*parser.Document

	if info.IsDir() {
		docs, err = p.ParseDirectory(srcPath)
	} else {
		var doc *parser.Document
		doc, err = p.ParseFile(srcPath)
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	if err != nil {
		return err
	}

	if benchmark {
		elapsed := time.Since(start)
		runtime.GC()
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		fmt.Printf("Loaded %d documents in %v\n", len(docs), elapsed)
		fmt.Printf("Memory: Alloc=%dMB, TotalAlloc=%dMB, Sys=%dMB, HeapObjects=%d\n",
			m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024, m.HeapObjects)
		return nil
	}

	assembler.Sort(docs)
	docs = assembler.Filter(docs, dateRange)

	if config.GetInteractive() {
		picked, ok, err := ui.Run(docs)
		if err != nil {
			return err
		}
		if !ok {
			return nil // aborted from the picker, nothing written
		}
		docs = picked
	}

	return assembler.WriteFile(config.GetOutput(), header, footer, docs)
}

// flagText reads the file named by a path flag, falling back to a default
// text when the flag is unset
func flagText(cmd *cobra.Command, name, fallback string) (string, error) {
	path, _ := cmd.Flags().GetString(name)
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return string(data), nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
