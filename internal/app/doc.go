// Package app wires the application together: configuration, logging,
// metrics, the data pipeline, services, the chi router and the HTTP
// server lifecycle including graceful shutdown.
package app
