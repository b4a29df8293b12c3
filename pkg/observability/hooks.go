// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about board activity, feed loading, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends without touching the engine
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBoardHooks(&myBoardHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Board().OnSwapStart(line, removed, added)
//	// ... run the animation ...
//	observability.Board().OnSwapComplete(line, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Board Hooks
// =============================================================================

// BoardHooks receives events from the board engine.
type BoardHooks interface {
	// Fill events
	OnFillStart(lineCount, poolSize int)
	OnFillComplete(placed int, duration time.Duration)

	// Swap lifecycle events
	OnSwapStart(line int, removed, added []string)
	OnSwapComplete(line int, duration time.Duration)
	OnSwapAbort(line int)

	// OnIdleTick records a scheduler tick that found no valid candidate.
	OnIdleTick()

	// Visibility transitions
	OnPause()
	OnResume()
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Feed Hooks
// =============================================================================

// FeedHooks receives events from feed loading.
type FeedHooks interface {
	// OnFetch records an outgoing feed fetch.
	OnFetch(ctx context.Context, source string)

	// OnLoaded records a completed feed load.
	OnLoaded(ctx context.Context, source string, labels int, duration time.Duration)

	// OnError records a feed load failure.
	OnError(ctx context.Context, source string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBoardHooks is a no-op implementation of BoardHooks.
type NoopBoardHooks struct{}

func (NoopBoardHooks) OnFillStart(int, int)                  {}
func (NoopBoardHooks) OnFillComplete(int, time.Duration)     {}
func (NoopBoardHooks) OnSwapStart(int, []string, []string)   {}
func (NoopBoardHooks) OnSwapComplete(int, time.Duration)     {}
func (NoopBoardHooks) OnSwapAbort(int)                       {}
func (NoopBoardHooks) OnIdleTick()                           {}
func (NoopBoardHooks) OnPause()                              {}
func (NoopBoardHooks) OnResume()                             {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopFeedHooks is a no-op implementation of FeedHooks.
type NoopFeedHooks struct{}

func (NoopFeedHooks) OnFetch(context.Context, string)                              {}
func (NoopFeedHooks) OnLoaded(context.Context, string, int, time.Duration)         {}
func (NoopFeedHooks) OnError(context.Context, string, error)                       {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	boardHooks BoardHooks = NoopBoardHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	feedHooks  FeedHooks  = NoopFeedHooks{}
	hooksMu    sync.RWMutex
)

// SetBoardHooks registers custom board hooks.
// This should be called once at application startup before the engine starts.
func SetBoardHooks(h BoardHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		boardHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetFeedHooks registers custom feed hooks.
// This should be called once at application startup before any feed loads.
func SetFeedHooks(h FeedHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		feedHooks = h
	}
}

// Board returns the registered board hooks.
func Board() BoardHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return boardHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Feed returns the registered feed hooks.
func Feed() FeedHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return feedHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	boardHooks = NoopBoardHooks{}
	cacheHooks = NoopCacheHooks{}
	feedHooks = NoopFeedHooks{}
}
