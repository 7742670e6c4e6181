package table

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	sdk "github.com/xataconnect/sdk"
)

var (
	// ErrInvalidTable indicates an empty table name.
	ErrInvalidTable = errors.New("table name is invalid")

	// ErrInvalidColumn indicates an empty column name or configuration.
	ErrInvalidColumn = errors.New("column is invalid")

	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to marshal request")
)

// Client defines the schema introspection and mutation capability interface.
type Client interface {
	// GetSchema retrieves the schema of a table.
	GetSchema(table string) (*sdk.Response, error)

	// SetSchema replaces the schema of a table.
	SetSchema(table string, schema map[string]any) (*sdk.Response, error)

	// Create creates a table and applies its schema; the two responses
	// are returned in call order.
	Create(table string, schema map[string]any) (*sdk.Response, *sdk.Response, error)

	// Delete removes a table.
	Delete(table string) (*sdk.Response, error)

	// AddColumn adds a column to a table.
	AddColumn(table string, column map[string]any) (*sdk.Response, error)

	// DeleteColumn removes a column from a table.
	DeleteColumn(table, column string) (*sdk.Response, error)

	// GetColumns lists the columns of a table.
	GetColumns(table string) (*sdk.Response, error)
}

// Config controls how a Client instance reaches the remote service.
type Config struct {
	// SDKConfig provides the resolved runtime used for remote calls.
	SDKConfig sdk.RuntimeConfig

	// Call overrides the transport used for schema operations.
	Call sdk.CallFunc
}

// TableClient is the schema capability client implementation.
type TableClient struct {
	call sdk.CallFunc
}

var _ Client = (*TableClient)(nil)

// New creates a table client. Construction is cheap and idempotent.
func New(config Config) (*TableClient, error) {
	call := config.Call
	if call == nil {
		call = config.SDKConfig.Call
	}
	if call == nil {
		call = sdk.HTTPCall(config.SDKConfig, nil)
	}
	return &TableClient{call: call}, nil
}

// GetSchema retrieves the schema of the table.
func (c *TableClient) GetSchema(table string) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	return c.do(http.MethodGet, tablePath(table)+"/schema", nil)
}

// SetSchema replaces the schema of the table.
func (c *TableClient) SetSchema(table string, schema map[string]any) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	return c.do(http.MethodPut, tablePath(table)+"/schema", schema)
}

// Create creates the table and then applies the schema. When the create call
// fails its error is reported and the schema call is never attempted.
func (c *TableClient) Create(table string, schema map[string]any) (*sdk.Response, *sdk.Response, error) {
	if table == "" {
		return nil, nil, ErrInvalidTable
	}

	created, err := c.do(http.MethodPut, tablePath(table), nil)
	if err != nil {
		return nil, nil, err
	}

	applied, err := c.SetSchema(table, schema)
	if err != nil {
		return nil, nil, err
	}
	return created, applied, nil
}

// Delete removes the table.
func (c *TableClient) Delete(table string) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	return c.do(http.MethodDelete, tablePath(table), nil)
}

// AddColumn adds a column described by the column configuration document.
func (c *TableClient) AddColumn(table string, column map[string]any) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	if len(column) == 0 {
		return nil, ErrInvalidColumn
	}
	return c.do(http.MethodPost, tablePath(table)+"/columns", column)
}

// DeleteColumn removes the named column.
func (c *TableClient) DeleteColumn(table, column string) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	if column == "" {
		return nil, ErrInvalidColumn
	}
	return c.do(http.MethodDelete, tablePath(table)+"/columns/"+url.PathEscape(column), nil)
}

// GetColumns lists the columns of the table.
func (c *TableClient) GetColumns(table string) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	return c.do(http.MethodGet, tablePath(table)+"/columns", nil)
}

// do forwards one call and normalizes the success check.
func (c *TableClient) do(method, path string, payload any) (*sdk.Response, error) {
	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Join(ErrMarshalRequest, err)
		}
		body = b
	}

	resp, err := c.call(method, path, "application/json", body)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, sdk.NewServerError(resp)
	}
	return resp, nil
}

func tablePath(table string) string {
	return "/tables/" + url.PathEscape(table)
}
