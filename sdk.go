package sdk

import (
	"net/http"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const (
	// DefaultBranch is used when no explicit database branch is provided.
	DefaultBranch = "main"

	// EnvAPIKey is the environment variable and secrets key holding the API key.
	EnvAPIKey = "XATA_API_KEY"

	// EnvDBURL is the environment variable and secrets key holding the database URL.
	EnvDBURL = "XATA_DB_URL"
)

// Config provides configuration options for SDK initialization.
type Config struct {
	// APIKey is the explicit API key. Takes precedence over Secrets and
	// the environment.
	APIKey string

	// DBURL is the explicit workspace database URL. Takes precedence over
	// Secrets and the environment. When empty after resolution, every
	// operation must address the service with an absolute URL.
	DBURL string

	// Branch selects the database branch. If empty, DefaultBranch is used.
	Branch string

	// Secrets is a host-provided secrets mapping consulted after explicit
	// fields and before the environment. Keys follow EnvAPIKey / EnvDBURL.
	Secrets map[string]string

	// Tables optionally registers table names for TableNames. Purely a
	// caller convenience; no operation consults it.
	Tables []string

	// HTTPClient overrides the HTTP client used by the default transport.
	HTTPClient *http.Client

	// Logger receives a debug entry per transport call. Defaults to a nop
	// logger.
	Logger *zap.Logger

	// Call overrides the transport used for every operation. When nil,
	// Connect installs the default HTTP transport.
	Call CallFunc
}

// RuntimeConfig carries resolved configuration that is shared by capability
// clients. It is an immutable snapshot; concurrent facades with different
// credentials never share state through it.
type RuntimeConfig struct {
	// APIKey is the resolved API key.
	APIKey string

	// DBURL is the resolved workspace database URL, possibly empty.
	DBURL string

	// Branch is the database branch addressed by relative paths.
	Branch string

	// Call performs one remote operation. Capability clients use it for
	// every request.
	Call CallFunc

	// Logger is the transport logger, never nil after Connect.
	Logger *zap.Logger
}

// BaseURL returns the branch-qualified base for relative operation paths,
// or an empty string when no database URL was resolved.
func (r RuntimeConfig) BaseURL() string {
	if r.DBURL == "" {
		return ""
	}
	return r.DBURL + ":" + r.Branch
}

// SDK represents the connection facade registered with a host application.
type SDK struct {
	config  Config
	runtime RuntimeConfig
}

// New initializes the facade from keyword-style configuration. No credential
// resolution or network activity happens here; call Connect before use.
func New(config Config) (*SDK, error) {
	if config.Branch == "" {
		config.Branch = DefaultBranch
	}
	return &SDK{config: config}, nil
}

// Connect performs one-time setup: credential resolution and construction of
// the default transport. It is idempotent and issues no network calls.
func (s *SDK) Connect() error {
	runtime, err := resolve(s.config)
	if err != nil {
		return err
	}
	s.runtime = runtime
	return nil
}

// Config returns the resolved runtime configuration snapshot. Zero until
// Connect succeeds.
func (s *SDK) Config() RuntimeConfig { return s.runtime }

// TableNames returns the table names registered via Config.Tables.
func (s *SDK) TableNames() []string { return s.config.Tables }

// Request forwards a raw API call through the resolved transport. The path
// may be relative to the branch base or an absolute URL.
func (s *SDK) Request(method, path, contentType string, body []byte) (*Response, error) {
	if s.runtime.Call == nil {
		return nil, ErrNotConnected
	}
	resp, err := s.runtime.Call(method, path, contentType, body)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, NewServerError(resp)
	}
	return resp, nil
}

// resolve layers credential sources lowest-precedence first so that later
// loads override earlier ones: environment, then secrets, then explicit
// values. The process environment is read, never written.
func resolve(config Config) (RuntimeConfig, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider("XATA_", ".", func(s string) string { return s }), nil); err != nil {
		return RuntimeConfig{}, err
	}

	if len(config.Secrets) > 0 {
		secrets := make(map[string]interface{}, len(config.Secrets))
		for key, value := range config.Secrets {
			if value != "" {
				secrets[key] = value
			}
		}
		if err := k.Load(confmap.Provider(secrets, "."), nil); err != nil {
			return RuntimeConfig{}, err
		}
	}

	explicit := map[string]interface{}{}
	if config.APIKey != "" {
		explicit[EnvAPIKey] = config.APIKey
	}
	if config.DBURL != "" {
		explicit[EnvDBURL] = config.DBURL
	}
	if len(explicit) > 0 {
		if err := k.Load(confmap.Provider(explicit, "."), nil); err != nil {
			return RuntimeConfig{}, err
		}
	}

	apiKey := k.String(EnvAPIKey)
	if apiKey == "" {
		return RuntimeConfig{}, ErrAPIKeyMissing
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	runtime := RuntimeConfig{
		APIKey: apiKey,
		DBURL:  k.String(EnvDBURL),
		Branch: config.Branch,
		Logger: logger,
	}

	runtime.Call = config.Call
	if runtime.Call == nil {
		runtime.Call = HTTPCall(runtime, config.HTTPClient)
	}

	return runtime, nil
}
