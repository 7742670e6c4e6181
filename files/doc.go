/*
Package files provides a client for file attachment columns of the hosted
database service: upload, fetch, and delete for single file columns and
array-valued file columns, plus the image transformation endpoint.

Upload and download bodies are raw bytes; only error responses carry JSON.
*/
package files
