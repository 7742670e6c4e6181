/*
Package records provides a client for record CRUD operations on the hosted
database service: get, insert (server-assigned or explicit id), upsert,
update, delete, bulk insert, and transactions.

Every method forwards the caller's arguments to exactly one remote call and
returns the response envelope unchanged; a response that does not report
success becomes a sdk.ServerError. The Transaction type offers a builder over
the batch endpoint.
*/
package records
