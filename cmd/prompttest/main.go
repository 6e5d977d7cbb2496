package main

// Render a generation prompt, and optionally send it straight to OpenRouter:
//   go run ./cmd/prompttest -type cover-letter -name "Jane" -job-title "SRE" -skills "Go" -send

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"hiremind-backend/internal/extract"
	"hiremind-backend/internal/generate"
	"hiremind-backend/internal/llm"
	"hiremind-backend/internal/llm/openrouter"
	"hiremind-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	name := flag.String("name", "Jane Doe", "Name")
	jobTitle := flag.String("job-title", "Software Engineer", "Job title")
	skills := flag.String("skills", "Go, PostgreSQL, Kubernetes", "Skills")
	experience := flag.String("experience", "", "Experience level (optional)")
	jdPath := flag.String("jd", "", "Path to job description file (optional)")
	tone := flag.String("tone", string(generate.ToneFormal), "Tone")
	genType := flag.String("type", string(generate.TypeResume), "resume or cover-letter")
	send := flag.Bool("send", false, "Call the model and print the relay result")
	outPath := flag.String("out", "", "Path to write raw JSON output (optional)")
	model := flag.String("model", cfg.Model, "Model")
	flag.Parse()

	req := generate.Request{
		Name:            *name,
		JobTitle:        *jobTitle,
		Skills:          *skills,
		ExperienceLevel: *experience,
		Tone:            generate.Tone(*tone),
		Type:            generate.Type(*genType),
	}
	if strings.TrimSpace(*jdPath) != "" {
		jd, err := extract.JobDescriptionFromFile(context.Background(), *jdPath)
		if err != nil {
			exitErr(fmt.Sprintf("read job description: %v", err))
		}
		req.JobDescription = jd
	}
	if err := generate.Validate(req); err != nil {
		exitErr(err.Error())
	}

	prompt, err := generate.BuildPrompt(req)
	if err != nil {
		exitErr(err.Error())
	}
	if !*send {
		fmt.Println(prompt)
		return
	}

	client, err := buildClient(cfg)
	if err != nil {
		exitErr(err.Error())
	}
	result, err := generate.NewService(client, *model).Generate(context.Background(), req)
	if err != nil {
		exitErr(fmt.Sprintf("generate: %v", err))
	}

	raw, err := json.Marshal(result)
	if err != nil {
		exitErr(fmt.Sprintf("encode result: %v", err))
	}
	pretty, err := prettyJSON(raw)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(pretty) == 0 || pretty[len(pretty)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func buildClient(cfg config.Config) (llm.Client, error) {
	return openrouter.NewClient(openrouter.Options{
		APIKey:  cfg.OpenRouterAPIKey,
		URL:     cfg.UpstreamURL,
		Referer: cfg.UpstreamReferer,
		Title:   cfg.AppTitle,
	})
}

func prettyJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
