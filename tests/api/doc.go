//go:build api
// +build api

// Package api contains tests that run against a real backend server.
// Run with: go test -tags=api ./tests/api/... -v
// Requires the backend to be running on localhost:8080 (override with
// API_BASE_URL) and, if auth is enabled, API_KEY to be exported.
package api
