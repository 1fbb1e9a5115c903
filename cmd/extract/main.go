package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"alfredoptarigan/hr-screening/internal/config"
	"alfredoptarigan/hr-screening/internal/extraction"
	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/services"
)

func main() {
	printText := flag.Bool("print", false, "print the extracted text of each file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-print] <file>...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()

	workDir, err := os.MkdirTemp("", "hr-extract-*")
	if err != nil {
		log.Fatalf("❌ Failed to create work directory: %v", err)
	}
	defer os.RemoveAll(workDir)

	runner := extraction.NewExecRunner()
	cascade := extraction.NewCascade(
		services.NewStorageService(workDir),
		extraction.NewTesseractEngine(runner, cfg.Extraction.TesseractBin, cfg.Extraction.TesseractLang),
		extraction.NewPdftoppmRasterizer(runner, cfg.Extraction.PdftoppmBin),
		extraction.Options{
			MinTextLength: cfg.Extraction.MinTextLength,
			OCRScale:      cfg.Extraction.OCRScale,
		},
	)

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, path := range flag.Args() {
		log.Printf("📄 Processing: %s", path)

		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("   ❌ Failed to read file: %v", err)
			failCount++
			continue
		}

		extracted, err := cascade.Extract(ctx, models.NewSourceDocument(filepath.Base(path), content))
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ %s via %s, %d characters", extracted.Provenance, extracted.Strategy, utf8.RuneCountInString(extracted.Text))
		if *printText {
			fmt.Printf("===== %s =====\n%s\n", path, extracted.Text)
		}
		successCount++
	}

	log.Println(strings.Repeat("-", 40))
	log.Printf("📊 Extracted %d of %d files", successCount, successCount+failCount)

	if failCount > 0 {
		os.RemoveAll(workDir)
		os.Exit(1)
	}
}
