package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/bnema/pmc-telemetry/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	LogPathKey      = "log.path"
	logFileMode     = 0o600
	logDirMode      = 0o700
	logConfigDir    = ".pmct"
	logFile         = "events.toml"
	tempFilePattern = ".events-*.toml.tmp"
)

// Log is a durable emitter keeping every combined event in a TOML file.
type Log struct {
	path  string
	mu    *sync.RWMutex
	clock ports.Clock
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.Emitter = (*Log)(nil)

// NewLog resolves the log path from cfg's log.path key, defaulting to
// ~/.pmct/events.toml.
func NewLog(cfg *viper.Viper, clock ports.Clock) (*Log, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(LogPathKey, filepath.Join(homeDir, logConfigDir, logFile))

	path := cfg.GetString(LogPathKey)
	if path == "" {
		return nil, errors.New("event log path is empty")
	}
	path, err = normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Log{path: path, mu: lockForPath(path), clock: clock}, nil
}

func (l *Log) Path() string {
	return l.path
}

func (l *Log) Emit(ctx context.Context, event domain.CombinedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := l.readSchema()
	if err != nil {
		return err
	}

	file.Events = append(file.Events, toSchema(event, l.clock.Now()))

	if err := ctx.Err(); err != nil {
		return err
	}

	return l.writeSchema(file)
}

// List returns stored events in emit order.
func (l *Log) List(ctx context.Context) ([]domain.StoredEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	file, err := l.readSchema()
	if err != nil {
		return nil, err
	}

	events := make([]domain.StoredEvent, 0, len(file.Events))
	for _, entry := range file.Events {
		events = append(events, fromSchema(entry))
	}

	return events, nil
}

// Clear drops every stored event and reports how many there were.
func (l *Log) Clear(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := l.readSchema()
	if err != nil {
		return 0, err
	}

	removed := len(file.Events)
	if removed == 0 {
		return 0, nil
	}

	if err := l.writeSchema(fileSchema{}); err != nil {
		return 0, err
	}

	return removed, nil
}

func (l *Log) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read event log: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode event log: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (l *Log) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(l.path), logDirMode); err != nil {
		return fmt.Errorf("create event log directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode event log: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(l.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp event log: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp event log: %w", err)
	}

	if err := tempFile.Chmod(logFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp event log: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp event log: %w", err)
	}

	if err := os.Rename(tempName, l.path); err != nil {
		return fmt.Errorf("replace event log: %w", err)
	}

	cleanup = false
	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve event log path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
