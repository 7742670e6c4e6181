package sql

import (
	"encoding/json"
	"errors"
	"net/http"

	sdk "github.com/xataconnect/sdk"
)

const (
	endpoint = "/sql"

	// ConsistencyStrong requests strongly consistent reads. The flag is
	// forwarded verbatim, never interpreted locally.
	ConsistencyStrong = "strong"

	// ConsistencyEventual requests eventually consistent reads.
	ConsistencyEventual = "eventual"
)

var (
	// ErrInvalidQuery indicates an empty or invalid SQL statement.
	ErrInvalidQuery = errors.New("query is invalid")

	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to marshal request")
)

// Client defines the SQL passthrough capability interface.
type Client interface {
	// Query executes a raw SQL statement against the database branch.
	Query(statement string, params []any, consistency string) (*sdk.Response, error)
}

// Config controls how a Client instance reaches the remote service.
type Config struct {
	// SDKConfig provides the resolved runtime used for remote calls.
	SDKConfig sdk.RuntimeConfig

	// Call overrides the transport used for SQL operations.
	Call sdk.CallFunc
}

// DBClient is the SQL capability client implementation.
type DBClient struct {
	call sdk.CallFunc
}

// New creates a SQL client. Construction is cheap and idempotent.
func New(config Config) (*DBClient, error) {
	call := config.Call
	if call == nil {
		call = config.SDKConfig.Call
	}
	if call == nil {
		call = sdk.HTTPCall(config.SDKConfig, nil)
	}
	return &DBClient{call: call}, nil
}

// Query executes a raw SQL statement. An empty consistency defaults to
// ConsistencyStrong; params may be nil for statements without placeholders.
func (c *DBClient) Query(statement string, params []any, consistency string) (*sdk.Response, error) {
	if statement == "" {
		return nil, ErrInvalidQuery
	}
	if consistency == "" {
		consistency = ConsistencyStrong
	}

	payload := map[string]any{
		"statement":   statement,
		"consistency": consistency,
	}
	if params != nil {
		payload["params"] = params
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Join(ErrMarshalRequest, err)
	}

	resp, err := c.call(http.MethodPost, endpoint, "application/json", b)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, sdk.NewServerError(resp)
	}
	return resp, nil
}
