package files

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	sdk "github.com/xataconnect/sdk"
)

// DefaultContentType is used for uploads when no content type is provided.
const DefaultContentType = "application/octet-stream"

var (
	// ErrInvalidTable indicates an empty table name.
	ErrInvalidTable = errors.New("table name is invalid")

	// ErrInvalidRecordID indicates an empty record id.
	ErrInvalidRecordID = errors.New("record id is invalid")

	// ErrInvalidColumn indicates an empty column name.
	ErrInvalidColumn = errors.New("column name is invalid")

	// ErrInvalidFileID indicates an empty file id for array-valued columns.
	ErrInvalidFileID = errors.New("file id is invalid")

	// ErrInvalidTransform indicates an unusable image URL or an empty
	// transformation set.
	ErrInvalidTransform = errors.New("image transformation is invalid")
)

// Client defines the file attachment capability interface.
type Client interface {
	// Put uploads file content into a file column.
	Put(table, recordID, column string, content []byte, contentType string) (*sdk.Response, error)

	// PutItem appends file content to an array-valued file column.
	PutItem(table, recordID, column, fileID string, content []byte, contentType string) (*sdk.Response, error)

	// Get downloads the content of a file column.
	Get(table, recordID, column string) (*sdk.Response, error)

	// GetItem downloads one file from an array-valued file column.
	GetItem(table, recordID, column, fileID string) (*sdk.Response, error)

	// Delete removes the content of a file column.
	Delete(table, recordID, column string) (*sdk.Response, error)

	// DeleteItem removes one file from an array-valued file column.
	DeleteItem(table, recordID, column, fileID string) (*sdk.Response, error)

	// Transform fetches an image through the transformation endpoint.
	Transform(imageURL string, transformations map[string]any) ([]byte, error)
}

// Config controls how a Client instance reaches the remote service.
type Config struct {
	// SDKConfig provides the resolved runtime used for remote calls.
	SDKConfig sdk.RuntimeConfig

	// Call overrides the transport used for file operations.
	Call sdk.CallFunc
}

// FilesClient is the file capability client implementation.
type FilesClient struct {
	call sdk.CallFunc
}

var _ Client = (*FilesClient)(nil)

// New creates a files client. Construction is cheap and idempotent.
func New(config Config) (*FilesClient, error) {
	call := config.Call
	if call == nil {
		call = config.SDKConfig.Call
	}
	if call == nil {
		call = sdk.HTTPCall(config.SDKConfig, nil)
	}
	return &FilesClient{call: call}, nil
}

// Put uploads content into a file column. An empty contentType defaults to
// DefaultContentType.
func (c *FilesClient) Put(table, recordID, column string, content []byte, contentType string) (*sdk.Response, error) {
	path, err := filePath(table, recordID, column)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = DefaultContentType
	}
	return c.do(http.MethodPut, path, contentType, content)
}

// PutItem appends content to an array-valued file column under fileID.
func (c *FilesClient) PutItem(table, recordID, column, fileID string, content []byte, contentType string) (*sdk.Response, error) {
	path, err := fileItemPath(table, recordID, column, fileID)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = DefaultContentType
	}
	return c.do(http.MethodPut, path, contentType, content)
}

// Get downloads the content of a file column. The response body is the raw
// file content, not JSON.
func (c *FilesClient) Get(table, recordID, column string) (*sdk.Response, error) {
	path, err := filePath(table, recordID, column)
	if err != nil {
		return nil, err
	}
	return c.do(http.MethodGet, path, "", nil)
}

// GetItem downloads one file of an array-valued file column.
func (c *FilesClient) GetItem(table, recordID, column, fileID string) (*sdk.Response, error) {
	path, err := fileItemPath(table, recordID, column, fileID)
	if err != nil {
		return nil, err
	}
	return c.do(http.MethodGet, path, "", nil)
}

// Delete removes the content of a file column.
func (c *FilesClient) Delete(table, recordID, column string) (*sdk.Response, error) {
	path, err := filePath(table, recordID, column)
	if err != nil {
		return nil, err
	}
	return c.do(http.MethodDelete, path, "", nil)
}

// DeleteItem removes one file of an array-valued file column.
func (c *FilesClient) DeleteItem(table, recordID, column, fileID string) (*sdk.Response, error) {
	path, err := fileItemPath(table, recordID, column, fileID)
	if err != nil {
		return nil, err
	}
	return c.do(http.MethodDelete, path, "", nil)
}

// Transform fetches imageURL through the service's transformation endpoint
// and returns the transformed bytes. Transformations are encoded as
// comma-separated key=value segments inserted after the host, with keys
// sorted for a stable URL.
func (c *FilesClient) Transform(imageURL string, transformations map[string]any) ([]byte, error) {
	if len(transformations) == 0 {
		return nil, ErrInvalidTransform
	}

	parsed, err := url.Parse(imageURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("%w: cannot parse image URL %q", ErrInvalidTransform, imageURL)
	}

	keys := make([]string, 0, len(transformations))
	for key := range transformations {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	segments := make([]string, 0, len(keys))
	for _, key := range keys {
		segments = append(segments, fmt.Sprintf("%s=%v", key, transformations[key]))
	}

	parsed.Path = "/transform/" + strings.Join(segments, ",") + parsed.Path
	resp, err := c.do(http.MethodGet, parsed.String(), "", nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// do forwards one call and normalizes the success check.
func (c *FilesClient) do(method, path, contentType string, body []byte) (*sdk.Response, error) {
	resp, err := c.call(method, path, contentType, body)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, sdk.NewServerError(resp)
	}
	return resp, nil
}

func filePath(table, recordID, column string) (string, error) {
	switch {
	case table == "":
		return "", ErrInvalidTable
	case recordID == "":
		return "", ErrInvalidRecordID
	case column == "":
		return "", ErrInvalidColumn
	}
	return "/tables/" + url.PathEscape(table) + "/data/" + url.PathEscape(recordID) +
		"/column/" + url.PathEscape(column) + "/file", nil
}

func fileItemPath(table, recordID, column, fileID string) (string, error) {
	path, err := filePath(table, recordID, column)
	if err != nil {
		return "", err
	}
	if fileID == "" {
		return "", ErrInvalidFileID
	}
	return path + "/" + url.PathEscape(fileID), nil
}
