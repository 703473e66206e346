package kryolite

import "sync"

// handleTable maps the uint32 handles given to the host onto live instances.
// Handle 0 is never issued.
type handleTable struct {
	mu   sync.Mutex
	next uint32
	live map[uint32]any
}

var handles = &handleTable{live: make(map[uint32]any)}

// Register stores an instance and returns its handle
func Register(instance any) uint32 {
	handles.mu.Lock()
	defer handles.mu.Unlock()
	for {
		handles.next++
		if _, taken := handles.live[handles.next]; handles.next != 0 && !taken {
			break
		}
	}
	handles.live[handles.next] = instance
	return handles.next
}

// TryLookup returns the instance behind a handle if it holds a T
func TryLookup[T any](handle uint32) (T, bool) {
	handles.mu.Lock()
	defer handles.mu.Unlock()
	instance, ok := handles.live[handle].(T)
	return instance, ok
}

// Lookup returns the instance behind a handle. An unknown handle or one
// holding another type aborts the call.
func Lookup[T any](handle uint32) T {
	instance, ok := TryLookup[T](handle)
	Require(ok)
	return instance
}

// Release drops a handle. It reports whether the handle was live.
func Release(handle uint32) bool {
	handles.mu.Lock()
	defer handles.mu.Unlock()
	_, ok := handles.live[handle]
	delete(handles.live, handle)
	return ok
}

// Latest returns the most recently registered live instance holding a T, or
// the zero T when there is none
func Latest[T any]() T {
	handles.mu.Lock()
	defer handles.mu.Unlock()
	var (
		found  T
		newest uint32
	)
	for handle, instance := range handles.live {
		if typed, ok := instance.(T); ok && handle > newest {
			found, newest = typed, handle
		}
	}
	return found
}

// Live returns the number of live handles
func Live() int {
	handles.mu.Lock()
	defer handles.mu.Unlock()
	return len(handles.live)
}
