// Command analyze runs the document pipeline once against a local file and
// prints the analysis result as JSON. Useful for smoke-testing credentials
// and prompt changes without the HTTP surface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/rsharda/civic-translator/internal/bootstrap"
	"github.com/rsharda/civic-translator/internal/config"
	"github.com/rsharda/civic-translator/internal/core/domain"
	"github.com/rsharda/civic-translator/internal/observability/logging"
)

func main() {
	var (
		file       = flag.String("file", "", "path to the document to analyze")
		lang       = flag.String("lang", "en", "target language code")
		occupation = flag.String("occupation", "", "occupation for personalization")
		location   = flag.String("location", "", "location for personalization")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -file <path> [-lang en] [-occupation farmer] [-location Pune]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.NewTextLogger("civic-translator-cli", cfg.LogLevel)

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		log.Fatalf("stat file: %v", err)
	}

	user := domain.UserContext{
		Occupation: *occupation,
		Location:   *location,
		Language:   *lang,
	}

	result, err := app.ProcessUC.Process(context.Background(), filepath.Base(*file), info.Size(), f, user)
	if err != nil {
		log.Fatalf("process document: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	fmt.Println(string(out))
}
