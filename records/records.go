package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	sdk "github.com/xataconnect/sdk"
)

var (
	// ErrInvalidTable indicates an empty table name.
	ErrInvalidTable = errors.New("table name is invalid")

	// ErrInvalidRecordID indicates an empty record id where one is required.
	ErrInvalidRecordID = errors.New("record id is invalid")

	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to marshal request")
)

// InsertOptions selects the explicit-id insert path and its qualifiers.
type InsertOptions struct {
	// RecordID is the explicit record id. When empty, a generated id is
	// used so the remaining options can still apply.
	RecordID string

	// CreateOnly rejects the insert when the record already exists.
	CreateOnly *bool

	// IfVersion inserts only when the stored record carries this version.
	IfVersion *int

	// Columns limits the columns echoed back in the response.
	Columns []string
}

// UpdateOptions qualifies upsert and update operations.
type UpdateOptions struct {
	// IfVersion applies the change only at this record version.
	IfVersion *int

	// Columns limits the columns echoed back in the response.
	Columns []string
}

// Client defines the record CRUD capability interface.
type Client interface {
	// Get retrieves a record by id.
	Get(table, recordID string, columns []string) (*sdk.Response, error)

	// Insert creates a record; opts selects the explicit-id path.
	Insert(table string, record map[string]any, opts *InsertOptions) (*sdk.Response, error)

	// Upsert creates or replaces a record under the given id.
	Upsert(table, recordID string, record map[string]any, opts *UpdateOptions) (*sdk.Response, error)

	// Update applies a partial update to a record.
	Update(table, recordID string, record map[string]any, opts *UpdateOptions) (*sdk.Response, error)

	// Delete removes a record by id.
	Delete(table, recordID string, columns []string) (*sdk.Response, error)

	// BulkInsert creates multiple records in one call.
	BulkInsert(table string, records []map[string]any) (*sdk.Response, error)

	// Transaction runs a batch of insert/update/get/delete operations.
	Transaction(payload any) (*sdk.Response, error)
}

// Config controls how a Client instance reaches the remote service.
type Config struct {
	// SDKConfig provides the resolved runtime used for remote calls.
	SDKConfig sdk.RuntimeConfig

	// Call overrides the transport used for record operations.
	Call sdk.CallFunc
}

// RecordsClient is the record capability client implementation.
type RecordsClient struct {
	call sdk.CallFunc
}

var _ Client = (*RecordsClient)(nil)

// New creates a records client. Construction is cheap and idempotent.
func New(config Config) (*RecordsClient, error) {
	call := config.Call
	if call == nil {
		call = config.SDKConfig.Call
	}
	if call == nil {
		call = sdk.HTTPCall(config.SDKConfig, nil)
	}
	return &RecordsClient{call: call}, nil
}

// Get retrieves a record by id, optionally projecting columns.
func (c *RecordsClient) Get(table, recordID string, columns []string) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	if recordID == "" {
		return nil, ErrInvalidRecordID
	}

	path := recordPath(table, recordID)
	if len(columns) > 0 {
		path += "?" + columnsQuery(columns).Encode()
	}
	return c.do(http.MethodGet, path, nil)
}

// Insert creates a record. With nil opts the server assigns the id; with
// opts the explicit-id path is used, generating an id when none is given.
func (c *RecordsClient) Insert(table string, record map[string]any, opts *InsertOptions) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}

	if opts == nil {
		return c.do(http.MethodPost, "/tables/"+url.PathEscape(table)+"/data", record)
	}

	recordID := opts.RecordID
	if recordID == "" {
		recordID = uuid.NewString()
	}

	query := columnsQuery(opts.Columns)
	if opts.CreateOnly != nil {
		query.Set("createOnly", strconv.FormatBool(*opts.CreateOnly))
	}
	if opts.IfVersion != nil {
		query.Set("ifVersion", strconv.Itoa(*opts.IfVersion))
	}

	path := recordPath(table, recordID)
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(http.MethodPut, path, record)
}

// Upsert creates or replaces the record stored under recordID.
func (c *RecordsClient) Upsert(table, recordID string, record map[string]any, opts *UpdateOptions) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	if recordID == "" {
		return nil, ErrInvalidRecordID
	}
	return c.do(http.MethodPost, recordPath(table, recordID)+updateQuery(opts), record)
}

// Update applies a partial update to the record stored under recordID.
func (c *RecordsClient) Update(table, recordID string, record map[string]any, opts *UpdateOptions) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	if recordID == "" {
		return nil, ErrInvalidRecordID
	}
	return c.do(http.MethodPatch, recordPath(table, recordID)+updateQuery(opts), record)
}

// Delete removes the record stored under recordID.
func (c *RecordsClient) Delete(table, recordID string, columns []string) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	if recordID == "" {
		return nil, ErrInvalidRecordID
	}

	path := recordPath(table, recordID)
	if len(columns) > 0 {
		path += "?" + columnsQuery(columns).Encode()
	}
	return c.do(http.MethodDelete, path, nil)
}

// BulkInsert creates multiple records in a single call. The record list is
// wrapped in the service's {"records": ...} envelope.
func (c *RecordsClient) BulkInsert(table string, records []map[string]any) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	return c.do(http.MethodPost, "/tables/"+url.PathEscape(table)+"/bulk", map[string]any{"records": records})
}

// Transaction runs a batch of operations. A bare operation list is wrapped
// in the {"operations": ...} envelope; a pre-wrapped document is forwarded
// untouched.
func (c *RecordsClient) Transaction(payload any) (*sdk.Response, error) {
	body := payload
	if doc, ok := payload.(map[string]any); ok {
		if _, wrapped := doc["operations"]; !wrapped {
			body = map[string]any{"operations": payload}
		}
	} else {
		body = map[string]any{"operations": payload}
	}
	return c.do(http.MethodPost, "/transaction", body)
}

// do forwards one call and normalizes the success check.
func (c *RecordsClient) do(method, path string, payload any) (*sdk.Response, error) {
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

func recordPath(table, recordID string) string {
	return "/tables/" + url.PathEscape(table) + "/data/" + url.PathEscape(recordID)
}

func columnsQuery(columns []string) url.Values {
	query := url.Values{}
	if len(columns) > 0 {
		query.Set("columns", strings.Join(columns, ","))
	}
	return query
}

func updateQuery(opts *UpdateOptions) string {
	if opts == nil {
		return ""
	}
	query := columnsQuery(opts.Columns)
	if opts.IfVersion != nil {
		query.Set("ifVersion", strconv.Itoa(*opts.IfVersion))
	}
	if len(query) == 0 {
		return ""
	}
	return "?" + query.Encode()
}
