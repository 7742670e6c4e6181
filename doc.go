/*
Package sdk provides the core entry point and runtime configuration for the
hosted database connector.

The package exposes New and Connect as the host-integration pair: New builds
the facade from keyword-style configuration, Connect resolves credentials
(explicit value, then secrets mapping, then XATA_API_KEY / XATA_DB_URL from
the environment) and installs the default HTTP transport. The resulting
RuntimeConfig is shared by the capability clients (records, data, sql, files,
table).
*/
package sdk
