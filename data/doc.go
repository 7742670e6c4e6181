/*
Package data provides a client for the query, search, aggregation, and AI
endpoints of the hosted database service, plus cursor pagination helpers.

Queries and search payloads are caller-owned documents forwarded verbatim.
The pagination helpers are the one place the facade inspects a response: when
the prior page reports no further results they return nil instead of issuing
a remote call.
*/
package data
