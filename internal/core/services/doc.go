// Package services contains the core business logic of deskhub: the
// OAuth token lifecycle manager and the page-number-to-cursor walker
// every paginated endpoint depends on.
package services
