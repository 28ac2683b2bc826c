package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"
)

type export int

const (
	exportInfo export = iota
	exportDemo
	exportArtist
	exportTitle
	exportPosition
	exportLength
	exportPositionSeconds
	exportLengthSeconds
	exportStatus
	exportCount
)

// cEntry is the C copy of the last value returned by one export, plus the
// one before it.
type cEntry struct {
	value string
	ptr   *C.char
	prev  *C.char
}

// cStringCache hands out C strings that the host may keep reading after the
// call returns. A string stays valid until its export has returned two newer
// values; the host only holds on to the latest result.
type cStringCache struct {
	mu      sync.Mutex
	entries [exportCount]cEntry
}

func newCStringCache() *cStringCache {
	return &cStringCache{}
}

func (c *cStringCache) get(e export, value string) *C.char {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &c.entries[e]
	if entry.ptr != nil && entry.value == value {
		return entry.ptr
	}

	// Allocate before freeing so a new pointer never aliases one the host
	// may have seen
	ptr := C.CString(value)
	if entry.prev != nil {
		C.free(unsafe.Pointer(entry.prev))
	}
	entry.prev = entry.ptr
	entry.ptr = ptr
	entry.value = value
	return ptr
}
