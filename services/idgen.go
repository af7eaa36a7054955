package services

import (
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// nextID mints a time-derived unique id (unix milliseconds), the same
// scheme the legacy storefront used for users and orders. The mutex
// keeps ids strictly increasing even for calls landing in the same
// millisecond.
func nextID() int64 {
	idMu.Lock()
	defer idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}
