// Package server holds configuration for the HTTP control plane.
package server
