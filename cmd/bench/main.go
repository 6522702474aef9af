package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/notemeta/pkg/core"
	"github.com/aretw0/notemeta/pkg/note"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark vault after running")
	flag.Parse()

	// 1. Setup Namespace
	benchDir, err := os.MkdirTemp("", "notemeta_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	fmt.Printf("Generating %d notes in %s...\n", *count, benchDir)
	startGen := time.Now()
	for i := 0; i < *count; i++ {
		status := "todo"
		if i%3 == 0 {
			status = "done"
		}
		content := fmt.Sprintf("---\ntitle: Note %d\ndate: %s\ntags: [benchmark, test]\n---\n# Benchmark Note %d\nstatus:: %s\nThis is a test note.\nreviewed:: no\n",
			i, time.Now().Format("2006-01-02"), i, status)
		filename := filepath.Join(benchDir, fmt.Sprintf("note_%d.md", i))
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// 2. Load
	startLoad := time.Now()
	c, err := note.Open([]string{benchDir}, note.WithLogger(logger), note.WithInclude("*.md"))
	if err != nil {
		panic(err)
	}
	fmt.Printf("Load: %v (Notes: %d)\n", time.Since(startLoad), c.Len())

	// 3. Filter
	startFilter := time.Now()
	err = c.Filter(note.Filter{HasMeta: []note.MetaQuery{
		{Key: "status", Values: []string{"done"}, Type: core.Inline},
	}})
	if err != nil {
		panic(err)
	}
	fmt.Printf("Filter: %v (Matches: %d)\n", time.Since(startFilter), c.Len())

	// 4. Edit and write back
	startUpdate := time.Now()
	for _, n := range c.Notes() {
		if err := n.Metadata.Set("reviewed", []string{"yes"}, core.Inline); err != nil {
			panic(err)
		}
	}
	if err := c.UpdateAll(core.PlacementBottom, false, true); err != nil {
		panic(err)
	}
	fmt.Printf("Consolidate + Write: %v\n", time.Since(startUpdate))
}
