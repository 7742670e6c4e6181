package data

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	sdk "github.com/xataconnect/sdk"
)

// DefaultPageSize is used by the pagination helpers when no size is given.
const DefaultPageSize = 20

var (
	// ErrInvalidTable indicates an empty table name.
	ErrInvalidTable = errors.New("table name is invalid")

	// ErrInvalidQuestion indicates an empty question for the AI endpoints.
	ErrInvalidQuestion = errors.New("question is invalid")

	// ErrInvalidSession indicates an empty chat session id for follow-ups.
	ErrInvalidSession = errors.New("chat session id is invalid")

	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to marshal request")
)

// PageOptions qualifies the pagination helpers.
type PageOptions struct {
	// Size is the page size; DefaultPageSize when zero.
	Size int

	// Offset skips results from the cursor position.
	Offset *int

	// Limit caps the total results reachable through the cursor.
	Limit *int

	// Consistency is forwarded verbatim when set ("strong" or "eventual").
	Consistency string
}

// Client defines the query, search, and AI capability interface.
type Client interface {
	// Query runs a filter/sort/page query against a table.
	Query(table string, query map[string]any) (*sdk.Response, error)

	// SearchBranch runs a full-text search across the whole branch.
	SearchBranch(query map[string]any) (*sdk.Response, error)

	// SearchTable runs a full-text search against one table.
	SearchTable(table string, query map[string]any) (*sdk.Response, error)

	// VectorSearch runs a vector similarity search against one table.
	VectorSearch(table string, query map[string]any) (*sdk.Response, error)

	// Aggregate runs an aggregation query against one table.
	Aggregate(table string, query map[string]any) (*sdk.Response, error)

	// Summarize runs a summarize query against one table.
	Summarize(table string, query map[string]any) (*sdk.Response, error)

	// Ask sends a question to the AI endpoint of a table.
	Ask(table, question string, rules []string, options map[string]any) (*sdk.Response, error)

	// AskFollowUp continues an AI chat session with another question.
	AskFollowUp(table, sessionID, question string) (*sdk.Response, error)

	// NextPage fetches the page after prev, or returns nil without a
	// remote call when prev reports no more results.
	NextPage(table string, prev *sdk.Response, opts PageOptions) (*sdk.Response, error)

	// PrevPage fetches the page before current under the same guard.
	PrevPage(table string, current *sdk.Response, opts PageOptions) (*sdk.Response, error)
}

// Config controls how a Client instance reaches the remote service.
type Config struct {
	// SDKConfig provides the resolved runtime used for remote calls.
	SDKConfig sdk.RuntimeConfig

	// Call overrides the transport used for data operations.
	Call sdk.CallFunc
}

// DataClient is the data capability client implementation.
type DataClient struct {
	call sdk.CallFunc
}

var _ Client = (*DataClient)(nil)

// New creates a data client. Construction is cheap and idempotent.
func New(config Config) (*DataClient, error) {
	call := config.Call
	if call == nil {
		call = config.SDKConfig.Call
	}
	if call == nil {
		call = sdk.HTTPCall(config.SDKConfig, nil)
	}
	return &DataClient{call: call}, nil
}

// Query runs a query against the table. A nil query selects everything with
// the service's default page.
func (c *DataClient) Query(table string, query map[string]any) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	if query == nil {
		query = map[string]any{}
	}
	return c.do(tablePath(table, "query"), query)
}

// SearchBranch runs a full-text search across every table of the branch.
func (c *DataClient) SearchBranch(query map[string]any) (*sdk.Response, error) {
	return c.do("/search", query)
}

// SearchTable runs a full-text search against one table.
func (c *DataClient) SearchTable(table string, query map[string]any) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	return c.do(tablePath(table, "search"), query)
}

// VectorSearch runs a vector similarity search against one table.
func (c *DataClient) VectorSearch(table string, query map[string]any) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	return c.do(tablePath(table, "vectorSearch"), query)
}

// Aggregate runs an aggregation query against one table.
func (c *DataClient) Aggregate(table string, query map[string]any) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	return c.do(tablePath(table, "aggregate"), query)
}

// Summarize runs a summarize query against one table.
func (c *DataClient) Summarize(table string, query map[string]any) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	return c.do(tablePath(table, "summarize"), query)
}

// Ask sends a question to the table's AI endpoint. Rules and options may be
// nil; the service receives empty defaults.
func (c *DataClient) Ask(table, question string, rules []string, options map[string]any) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	if question == "" {
		return nil, ErrInvalidQuestion
	}

	if rules == nil {
		rules = []string{}
	}

	payload := map[string]any{"question": question, "rules": rules}
	for key, value := range options {
		payload[key] = value
	}
	return c.do(tablePath(table, "ask"), payload)
}

// AskFollowUp continues the AI chat session identified by sessionID.
func (c *DataClient) AskFollowUp(table, sessionID, question string) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	if sessionID == "" {
		return nil, ErrInvalidSession
	}
	if question == "" {
		return nil, ErrInvalidQuestion
	}
	return c.do(tablePath(table, "ask")+"/"+url.PathEscape(sessionID), map[string]any{"message": question})
}

// NextPage fetches the page after prev. When prev reports no further
// results, it returns nil without calling the remote service.
func (c *DataClient) NextPage(table string, prev *sdk.Response, opts PageOptions) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	if prev == nil || !prev.HasMoreResults() {
		return nil, nil
	}
	return c.Query(table, map[string]any{"page": pageBody("after", prev.Cursor(), opts)})
}

// PrevPage fetches the page before current under the same no-more-results
// guard as NextPage.
func (c *DataClient) PrevPage(table string, current *sdk.Response, opts PageOptions) (*sdk.Response, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	if current == nil || !current.HasMoreResults() {
		return nil, nil
	}
	return c.Query(table, map[string]any{"page": pageBody("before", current.Cursor(), opts)})
}

// do forwards one POST call and normalizes the success check.
func (c *DataClient) do(path string, payload any) (*sdk.Response, error) {
	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Join(ErrMarshalRequest, err)
		}
		body = b
	}

	resp, err := c.call(http.MethodPost, path, "application/json", body)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, sdk.NewServerError(resp)
	}
	return resp, nil
}

func tablePath(table, operation string) string {
	return "/tables/" + url.PathEscape(table) + "/" + operation
}

func pageBody(direction, cursor string, opts PageOptions) map[string]any {
	size := opts.Size
	if size <= 0 {
		size = DefaultPageSize
	}

	page := map[string]any{"size": size, direction: cursor}
	if opts.Offset != nil {
		page["offset"] = *opts.Offset
	}
	if opts.Limit != nil {
		page["limit"] = *opts.Limit
	}
	if opts.Consistency != "" {
		page["consistency"] = opts.Consistency
	}
	return page
}
