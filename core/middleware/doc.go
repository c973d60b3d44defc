// Package middleware groups the Fiber middleware used by the server:
//
//   - rayid: assigns a correlation id to every request
//   - auth: API key protection for the control plane
package middleware
