/*
Package dates normalizes date strings in record payloads to the RFC 3339
timestamps the hosted database service expects for datetime columns.

Two input patterns are accepted, a bare calendar date and a calendar date
with time; anything else is a validation error. Normalization is an explicit
opt-in run by the caller before insert or update, against a column schema
obtained from the table client.
*/
package dates
