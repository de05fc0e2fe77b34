// Package domain contains the core entities of the deskhub dashboard:
// the persisted credential record, the minimal resource shapes exposed
// over HTTP, and the sentinel errors handlers translate into status codes.
package domain
