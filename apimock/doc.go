/*
Package apimock provides a friendly pretend database service for transport
calls.

It's designed primarily for SDK development and tests where you want to
validate exactly what a capability client sends to the remote service—without
needing a live database. No workspaces were harmed in the making of these
tests.

Why use apimock?

  - Validate routing: ensure calls use the expected HTTP method and path when you set them.
  - Inspect payloads: plug in a PayloadValidator to assert request bodies.
  - Script responses: return custom envelopes or simulate failures.

Quick start

	m, _ := apimock.New(apimock.Config{
	  ExpectedMethod: "POST",
	  ExpectedPath:   "/tables/Users/query",
	  PayloadValidator: func(p []byte) error {
	    // Decode and assert fields here
	    return nil
	  },
	  Response: apimock.OK(`{"records":[]}`),
	})

	// Inject into a client under test
	resp, err := m.Call("POST", "/tables/Users/query", "application/json", []byte(`{}`))

Behavior

  - If Fail is true and Error is set, Call returns that error.
  - If Fail is true and Error is nil, Call returns ErrOperationFailed.
  - Otherwise, Call enforces ExpectedMethod/ExpectedPath and runs
    PayloadValidator when provided. If everything is in order, Response (when
    set) provides the return envelope; otherwise an empty 200 is returned.
  - Leave fields blank when you want a wildcard—apimock only enforces values
    you set.
*/
package apimock
