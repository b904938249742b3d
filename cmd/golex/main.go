// Command golex builds scanners from token-type declarations and either
// tokenizes input on the command line or serves the tokenize API.
//
// Declarations are a JSON file:
//
//	{"types": [
//	  {"name": "identifier", "pattern": "[a-zA-Z][a-zA-Z0-9]*"},
//	  {"name": "integer", "pattern": "[0-9]+", "parse": "int"}
//	]}
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"GoLex/internal/server"
	"GoLex/internal/token"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to token-type declaration file")
	serve := flag.Bool("serve", false, "run the tokenize API instead of scanning")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(getEnv("GOLEX_LOG_LEVEL", "info")),
	}))
	slog.SetDefault(logger)

	if *serve {
		runServer(logger, *configPath)
		return
	}

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "golex: -config is required when not serving")
		os.Exit(2)
	}
	decls, err := loadDecls(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "golex: %v\n", err)
		os.Exit(1)
	}

	input, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "golex: %v\n", err)
		os.Exit(1)
	}

	if err := tokenize(decls, input, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "golex: %v\n", err)
		os.Exit(1)
	}
}

// tokenize scans the input and writes one JSON token per line.
func tokenize(decls []server.TypeDecl, input string, out io.Writer) error {
	mgr := server.NewManager(slog.Default())
	if err := mgr.Create("main", decls); err != nil {
		return err
	}
	inst, err := mgr.Get("main")
	if err != nil {
		return err
	}
	toks, err := inst.Tokenize(input)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	for _, tok := range toks {
		if err := enc.Encode(renderToken(tok)); err != nil {
			return err
		}
	}
	return nil
}

func renderToken(tok token.Token) map[string]any {
	return map[string]any{
		"type":   tok.Type.Name(),
		"lexeme": tok.Lexeme,
		"value":  tok.Value,
		"line":   tok.Position.Line,
		"column": tok.Position.Column,
	}
}

func runServer(logger *slog.Logger, configPath string) {
	port := getEnv("GOLEX_PORT", "8080")

	mgr := server.NewManager(logger)
	if configPath != "" {
		decls, err := loadDecls(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "golex: %v\n", err)
			os.Exit(1)
		}
		if err := mgr.Create("default", decls); err != nil {
			fmt.Fprintf(os.Stderr, "golex: %v\n", err)
			os.Exit(1)
		}
		logger.Info("default scanner loaded", "config", configPath)
	}

	handler := server.NewHandler(mgr, logger)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	// Health check endpoint.
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"version": Version,
		})
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("listening", "addr", srv.Addr, "version", Version)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func loadDecls(path string) ([]server.TypeDecl, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg struct {
		Types []server.TypeDecl `json:"types"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg.Types, nil
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
