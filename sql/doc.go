/*
Package sql provides a client for the raw SQL passthrough endpoint of the
hosted database service.

Statements and their parameters are forwarded verbatim; the consistency flag
("strong" or "eventual") is passed through to the service and never
interpreted locally.
*/
package sql
