// Package server exposes scanner construction and tokenization over
// HTTP: scanners are declared as named token-type lists with textual
// patterns, then fed text to tokenize.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"GoLex/internal/pattern"
	"GoLex/internal/scanner"
	"GoLex/internal/stream"
	"GoLex/internal/token"
)

// Registry limits.
const (
	MaxScanners     = 256
	MaxTokenTypes   = 128
	MaxTokenizeSize = 1 << 20
)

var (
	ErrScannerNotFound  = errors.New("scanner not found")
	ErrScannerExists    = errors.New("scanner already exists")
	ErrTooManyScanners  = errors.New("scanner limit reached")
	ErrNoTokenTypes     = errors.New("scanner needs at least one token type")
	ErrUnknownParseKind = errors.New("unknown parse kind")
)

// TypeDecl declares one token type: a display name, a textual pattern,
// and which built-in parser converts its lexemes.
type TypeDecl struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Parse   string `json:"parse,omitempty"` // word (default), int, float, bool
}

// Instance is a registered scanner. Scanning is stateful, so tokenize
// calls on one instance serialize on its mutex.
type Instance struct {
	Name  string
	Decls []TypeDecl

	mu      sync.Mutex
	scanner *scanner.Scanner
}

// Tokenize scans the whole input under the instance lock.
func (inst *Instance) Tokenize(input string) ([]token.Token, error) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.scanner.ScanAll(stream.NewText(input))
}

// Manager is the named scanner registry behind the HTTP API.
type Manager struct {
	logger *slog.Logger

	mu        sync.RWMutex
	instances map[string]*Instance
}

// NewManager creates an empty registry.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		logger:    logger,
		instances: make(map[string]*Instance),
	}
}

// Create compiles the declarations and registers a scanner under name.
func (m *Manager) Create(name string, decls []TypeDecl) error {
	types, err := buildTypes(decls)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.instances[name]; ok {
		return ErrScannerExists
	}
	if len(m.instances) >= MaxScanners {
		return ErrTooManyScanners
	}
	m.instances[name] = &Instance{
		Name:    name,
		Decls:   append([]TypeDecl(nil), decls...),
		scanner: scanner.New(types...),
	}
	m.logger.Info("scanner created", "name", name, "token_types", len(decls))
	return nil
}

// Get returns the named scanner instance.
func (m *Manager) Get(name string) (*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.instances[name]
	if !ok {
		return nil, ErrScannerNotFound
	}
	return inst, nil
}

// Delete removes the named scanner.
func (m *Manager) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.instances[name]; !ok {
		return ErrScannerNotFound
	}
	delete(m.instances, name)
	m.logger.Info("scanner deleted", "name", name)
	return nil
}

// List returns the registered scanner names in lexical order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.instances))
	for name := range m.instances {
		names = append(names, name)
	}
	// Insertion sort: registries stay small.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}

// buildTypes compiles declarations into token types, declaration order
// preserved because it carries scanner precedence.
func buildTypes(decls []TypeDecl) ([]*token.Type, error) {
	if len(decls) == 0 {
		return nil, ErrNoTokenTypes
	}
	if len(decls) > MaxTokenTypes {
		return nil, fmt.Errorf("%d token types exceeds the limit of %d", len(decls), MaxTokenTypes)
	}
	types := make([]*token.Type, 0, len(decls))
	for _, d := range decls {
		r, err := pattern.Compile(d.Pattern)
		if err != nil {
			return nil, fmt.Errorf("token type %q: %w", d.Name, err)
		}
		parse, err := parseKind(d.Parse)
		if err != nil {
			return nil, fmt.Errorf("token type %q: %w", d.Name, err)
		}
		tt, err := token.NewType(d.Name, r, parse)
		if err != nil {
			return nil, err
		}
		types = append(types, tt)
	}
	return types, nil
}

func parseKind(kind string) (token.ParseFunc, error) {
	switch kind {
	case "", "word":
		return token.ParseWord, nil
	case "int":
		return token.ParseInt, nil
	case "float":
		return token.ParseFloat, nil
	case "bool":
		return token.ParseBool, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownParseKind, kind)
	}
}
