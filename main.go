package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/urfave/negroni"

	"pdfanalyzer/analyzer"
	"pdfanalyzer/config"
	"pdfanalyzer/document_type"
	"pdfanalyzer/handlers"
	"pdfanalyzer/llm_client"
	"pdfanalyzer/logging"
	"pdfanalyzer/pdf_parser"
	"pdfanalyzer/server"
	"pdfanalyzer/timing"
)

func main() {
	var (
		pdfPath     string
		docTypeFlag string
		question    string
		interactive bool
		serve       bool
	)
	flag.StringVar(&pdfPath, "pdf", "", "Path to the PDF document")
	flag.StringVar(&docTypeFlag, "type", "generic", "Document type (contract, resume, report, generic)")
	flag.StringVar(&question, "question", "", "Ask a single question about the document")
	flag.BoolVar(&interactive, "interactive", false, "Start the interactive question loop")
	flag.BoolVar(&serve, "serve", false, "Expose the analyzer over HTTP")
	flag.Parse()

	cfg := config.Load()
	logger := setupLogger(cfg)

	parser := pdf_parser.New(cfg.MaxPDFPages, logger)
	llm := llm_client.New(cfg.OllamaHost, cfg.OllamaModel, cfg.RequestTimeout, logger)
	a := analyzer.New(cfg, parser, llm, logger)

	ctx := context.Background()

	if pdfPath != "" {
		docType := document_type.ParseType(docTypeFlag)
		fmt.Printf("Analyzing %s document: %s\n", docType, pdfPath)

		result := a.Analyze(ctx, pdfPath, docType)
		if !result.Success {
			fmt.Fprintf(os.Stderr, "Error analyzing document: %s\n", result.Error)
			os.Exit(1)
		}

		fmt.Printf("Analysis completed successfully.\n")
		fmt.Printf("  Pages processed: %d\n", result.PDFData.PageCount)
		fmt.Printf("  File size: %d bytes\n", result.PDFData.FileSizeBytes)
		fmt.Printf("  Document type: %s\n", result.DocumentType)
		printTiming(result.Timing, "Document Analysis Performance")

		if result.StructuredData != "" {
			fmt.Printf("\nExtracted Information:\n%s\n", result.StructuredData)
		}

		if question != "" {
			fmt.Printf("\nAnswering: %s\n", question)
			answer := a.Ask(ctx, question)
			if answer.Success {
				fmt.Printf("\n%s\n", answer.Answer)
				printTiming(answer.Timing, "Question Answering Performance")
			} else {
				fmt.Fprintf(os.Stderr, "Error: %s\n", answer.Error)
			}
		}
	}

	switch {
	case serve:
		runServer(cfg, a, logger)
	case interactive:
		runInteractive(ctx, a)
	case pdfPath == "":
		fmt.Println("Use -h to see available options.")
		fmt.Println("\nQuick start:")
		fmt.Println("  pdfanalyzer -pdf document.pdf -type contract -interactive")
		fmt.Println("  pdfanalyzer -pdf resume.pdf -type resume -question 'What are their skills?'")
	}
}

func setupLogger(cfg config.Config) *slog.Logger {
	level := parseLogLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogDir != "" {
		handler, err := logging.NewDailyFileHandler(cfg.LogDir, opts)
		if err == nil {
			return slog.New(handler)
		}
		fmt.Fprintf(os.Stderr, "Warning: falling back to stdout logging: %v\n", err)
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runServer(cfg config.Config, a *analyzer.DocumentAnalyzer, logger *slog.Logger) {
	h := handlers.NewDocumentHandler(a, logger)
	r := server.SetupRoutes(h)
	n := setupNegroni(r)

	logger.Info("Starting HTTP server", slog.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      n,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
	}
	server.Serve(srv)
}

func setupNegroni(r *mux.Router) *negroni.Negroni {
	n := negroni.New()
	n.Use(negroni.NewRecovery())
	n.Use(negroni.NewLogger())
	n.UseHandler(r)
	return n
}

func runInteractive(ctx context.Context, a *analyzer.DocumentAnalyzer) {
	fmt.Println("\nInteractive Mode")
	fmt.Println("Type 'quit' or 'exit' to stop. Type 'help' for commands.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nQuestion> ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return
		case "help":
			printHelp(a.DocumentType())
			continue
		case "summary":
			if !a.IsLoaded() {
				fmt.Println("No document loaded. Please analyze a document first.")
				continue
			}
			fmt.Println("Generating summary...")
			result := a.Summary(ctx)
			if result.Success {
				fmt.Printf("\n%s\n", result.Answer)
			} else {
				fmt.Printf("Error: %s\n", result.Error)
			}
			continue
		case "":
			continue
		}

		if !a.IsLoaded() {
			fmt.Println("No document loaded. Please analyze a document first.")
			fmt.Println("Usage: pdfanalyzer -pdf document.pdf -type contract -interactive")
			continue
		}

		fmt.Println("Thinking...")
		result := a.Ask(ctx, input)
		if result.Success {
			fmt.Printf("\n%s\n", result.Answer)
			printTiming(result.Timing, "Question Performance")
		} else {
			fmt.Printf("Error: %s\n", result.Error)
		}
	}
}

var exampleQuestions = map[document_type.Type][]string{
	document_type.Contract: {
		"Who are the parties involved in this contract?",
		"What type of contract is this?",
		"What are the key terms and conditions?",
		"What are the payment terms?",
		"When does this contract expire?",
		"What are the termination conditions?",
	},
	document_type.Resume: {
		"What is this person's name?",
		"What are their key skills?",
		"What is their current job?",
		"How many years of experience do they have?",
		"What programming languages do they know?",
		"What is their educational background?",
	},
	document_type.Generic: {
		"What is this document about?",
		"Who are the key people or entities mentioned?",
		"What are the important dates?",
		"What are the main obligations or requirements?",
		"What financial information is mentioned?",
	},
}

func printHelp(docType document_type.Type) {
	fmt.Println("\nAvailable Commands:")
	fmt.Println("  help        - Show this help message")
	fmt.Println("  summary     - Get a summary of the loaded document")
	fmt.Println("  quit/exit/q - Exit the program")

	questions, ok := exampleQuestions[docType]
	if !ok {
		questions = exampleQuestions[document_type.Generic]
	}
	fmt.Println("\nExample Questions:")
	for _, q := range questions {
		fmt.Printf("  - %s\n", q)
	}
}

func printTiming(stages timing.Stages, title string) {
	if len(stages) == 0 {
		return
	}

	keys := make([]string, 0, len(stages))
	for k := range stages {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("\n%s:\n", title)
	for _, k := range keys {
		if strings.HasSuffix(k, "_per_second") {
			fmt.Printf("  %-28s %.1f/s\n", k, stages[k])
			continue
		}
		fmt.Printf("  %-28s %s\n", k, formatSeconds(stages[k]))
	}
}

func formatSeconds(seconds float64) string {
	switch {
	case seconds < 1:
		return fmt.Sprintf("%.1fms", seconds*1000)
	case seconds < 60:
		return fmt.Sprintf("%.2fs", seconds)
	default:
		minutes := int(seconds) / 60
		return fmt.Sprintf("%dm %.1fs", minutes, seconds-float64(minutes*60))
	}
}
