package types

import "errors"

// Config holds backend selection and parameters for Warehouse.Attach.
type Config struct {
	Backend               string `json:"backend" yaml:"backend"`
	DataDir               string `json:"data_dir" yaml:"data_dir"`
	SyncStrategy          string `json:"sync_strategy,omitempty" yaml:"sync_strategy,omitempty"`
	StrictRatioValidation bool   `json:"strict_ratio_validation,omitempty" yaml:"strict_ratio_validation,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// JSONL sync strategies. Immediate rewrites the JSONL interchange files on
// every committed write; on_close defers all rewrites to Detach.
const (
	SyncImmediate = "immediate"
	SyncOnClose   = "on_close"
)

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrSyncStrategyUnknown = errors.New("unknown sync strategy")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// knownSyncStrategies lists the sync strategies that Validate accepts.
// Empty means the default (immediate).
var knownSyncStrategies = map[string]bool{
	"":            true,
	SyncImmediate: true,
	SyncOnClose:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if !knownSyncStrategies[c.SyncStrategy] {
		return ErrSyncStrategyUnknown
	}
	return nil
}
