/*
Package table provides a client for schema introspection and mutation on the
hosted database service: table create/delete, schema get/set, and column
add/delete/list.

Create is the one operation that issues two remote calls (create-table, then
set-schema); a failed create reports immediately without touching the schema.
*/
package table
