package main

// Generate a resume or cover letter through a running relay:
//   go run ./cmd/hiremind -name "Jane Doe" -job-title "Backend Engineer" -skills "Go, SQL" -type resume

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"hiremind-backend/internal/client"
	"hiremind-backend/internal/extract"
	"hiremind-backend/internal/generate"
	"hiremind-backend/internal/shared/telemetry"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	form    client.Form
	genType string
	jdFile  string
	apiURL  string
	cache   string
	noCache bool
	outDir  string
	last    bool
	verbose bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	opts := options{form: client.NewForm()}
	tone := string(opts.form.Tone)

	fs := flag.NewFlagSet("hiremind", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.form.Name, "name", "", "Full name (required)")
	fs.StringVar(&opts.form.JobTitle, "job-title", "", "Target job title (required)")
	fs.StringVar(&opts.form.Skills, "skills", "", "Comma separated skills (required)")
	fs.StringVar(&opts.form.ExperienceLevel, "experience", "", "Experience level: "+strings.Join(client.ExperienceLevels, ", "))
	fs.StringVar(&opts.form.JobDescription, "jd", "", "Job description text (optional)")
	fs.StringVar(&opts.jdFile, "jd-file", "", "Read the job description from a .pdf, .docx or .txt file")
	fs.StringVar(&tone, "tone", tone, "Tone: Formal, Friendly, Confident or Minimalist")
	fs.StringVar(&opts.genType, "type", string(generate.TypeResume), "Document type: resume or cover-letter")
	fs.StringVar(&opts.apiURL, "api", client.BaseURLFromEnv(), "Relay base URL")
	fs.StringVar(&opts.cache, "cache", client.DefaultCachePath(), "Path of the local cache database")
	fs.BoolVar(&opts.noCache, "no-cache", false, "Keep the last result in memory only")
	fs.StringVar(&opts.outDir, "out", "", "Directory to save the result as a .txt file")
	fs.BoolVar(&opts.last, "last", false, "Print today's last generated document and exit")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	opts.form.Tone = generate.Tone(tone)
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	if opts.verbose {
		telemetry.SetLogger(telemetry.NewConsole(stderr))
	} else {
		log.SetOutput(io.Discard)
		telemetry.SetLogger(telemetry.NewJSON(io.Discard))
	}

	slots, closeSlots, err := openSlots(ctx, opts)
	if err != nil {
		fmt.Fprintf(stderr, "open cache: %v\n", err)
		return 1
	}
	defer closeSlots()

	notifier := client.NewConsoleNotifier(stderr)
	ctrl := client.NewController(client.New(opts.apiURL), slots, notifier)

	if opts.last {
		ok, err := ctrl.Load(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "load cache: %v\n", err)
			return 1
		}
		if !ok {
			fmt.Fprintln(stderr, "Nothing generated today.")
			return 1
		}
		return emit(ctrl.View(), opts.outDir, stdout, stderr)
	}

	if opts.jdFile != "" {
		text, err := extract.JobDescriptionFromFile(ctx, opts.jdFile)
		if err != nil {
			fmt.Fprintf(stderr, "read job description: %v\n", err)
			return 1
		}
		opts.form.JobDescription = text
	}

	_, err = ctrl.Submit(ctx, opts.form, generate.Type(opts.genType))
	switch {
	case errors.Is(err, client.ErrNotReady):
		fmt.Fprintln(stderr, "Please fill in -name, -job-title, -skills and -tone.")
		return 2
	case err != nil:
		// already reported through the notifier
		return 1
	}
	return emit(ctrl.View(), opts.outDir, stdout, stderr)
}

func openSlots(ctx context.Context, opts options) (client.SlotStore, func(), error) {
	if opts.noCache {
		return client.NewMemorySlotStore(), func() {}, nil
	}
	store, sqlDB, err := client.OpenSQLiteSlotStore(ctx, opts.cache)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { closeDB(sqlDB) }, nil
}

func closeDB(sqlDB *sql.DB) {
	if err := sqlDB.Close(); err != nil {
		telemetry.Warn("cache.close_failed", map[string]any{"error": err})
	}
}

func emit(view client.View, outDir string, stdout, stderr io.Writer) int {
	if _, err := io.WriteString(stdout, view.Content); err != nil {
		return 1
	}
	if !strings.HasSuffix(view.Content, "\n") {
		_, _ = io.WriteString(stdout, "\n")
	}
	if outDir == "" {
		return 0
	}
	path, err := client.SaveDownload(outDir, view.Content, view.Type)
	if err != nil {
		fmt.Fprintf(stderr, "save: %v\n", err)
		return 1
	}
	fmt.Fprintf(stderr, "Saved %s\n", path)
	return 0
}
