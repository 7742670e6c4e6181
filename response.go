package sdk

import "github.com/tidwall/gjson"

// Response is the wrapped result of one remote call: an HTTP status, the
// server status line, and the raw JSON payload. Successful operations return
// it to the caller unmodified; the facade never retains it.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Status is the HTTP status line.
	Status string

	// Body is the raw response payload. JSON for every operation except
	// file fetches and image transforms, which return raw content.
	Body []byte
}

// IsSuccess reports whether the remote call succeeded (any 2xx status).
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ServerMessage returns the server-provided message of an error payload, or
// an empty string when none is present.
func (r *Response) ServerMessage() string {
	return gjson.GetBytes(r.Body, "message").String()
}

// Cursor returns the pagination cursor of a query response, or an empty
// string when the response carries none.
func (r *Response) Cursor() string {
	return gjson.GetBytes(r.Body, "meta.page.cursor").String()
}

// HasMoreResults reports whether the query response indicates further pages.
func (r *Response) HasMoreResults() bool {
	return gjson.GetBytes(r.Body, "meta.page.more").Bool()
}

// Records returns the records array of a query response as raw JSON results.
func (r *Response) Records() []gjson.Result {
	return gjson.GetBytes(r.Body, "records").Array()
}

// RecordCount returns the number of records in a query response.
func (r *Response) RecordCount() int {
	return len(r.Records())
}

// Get reads an arbitrary JSON path from the payload.
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}
