// Package domain contains the core data types shared across the service:
// candidate pages produced by the page extractor, leads eligible for upload,
// and run lifecycle states.
package domain
