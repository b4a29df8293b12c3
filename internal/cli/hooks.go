package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skillboard/skillboard/pkg/observability"
)

// logBoardHooks forwards engine events to the logger at debug level.
// Installed for the lifetime of a board session.
type logBoardHooks struct {
	logger *log.Logger
}

func (h logBoardHooks) OnFillStart(lineCount, poolSize int) {
	h.logger.Debug("filling board", "lines", lineCount, "pool", poolSize)
}

func (h logBoardHooks) OnFillComplete(placed int, duration time.Duration) {
	h.logger.Debug("board filled", "placed", placed, "duration", duration)
}

func (h logBoardHooks) OnSwapStart(line int, removed, added []string) {
	h.logger.Debug("swap started", "line", line, "removed", removed, "added", added)
}

func (h logBoardHooks) OnSwapComplete(line int, duration time.Duration) {
	h.logger.Debug("swap complete", "line", line, "duration", duration)
}

func (h logBoardHooks) OnSwapAbort(line int) {
	h.logger.Debug("swap aborted", "line", line)
}

func (h logBoardHooks) OnIdleTick() {
	h.logger.Debug("idle tick")
}

func (h logBoardHooks) OnPause() {
	h.logger.Debug("board paused")
}

func (h logBoardHooks) OnResume() {
	h.logger.Debug("board resumed")
}

// logFeedHooks forwards feed loader events to the logger.
type logFeedHooks struct {
	logger *log.Logger
}

func (h logFeedHooks) OnFetch(ctx context.Context, source string) {
	h.logger.Debug("fetching feed", "source", source)
}

func (h logFeedHooks) OnLoaded(ctx context.Context, source string, labels int, duration time.Duration) {
	h.logger.Debug("feed loaded", "source", source, "labels", labels, "duration", duration)
}

func (h logFeedHooks) OnError(ctx context.Context, source string, err error) {
	h.logger.Warn("feed load failed", "source", source, "err", err)
}

// logCacheHooks forwards cache events to the logger.
type logCacheHooks struct {
	logger *log.Logger
}

func (h logCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logCacheHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logCacheHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// installHooks routes package-level instrumentation into the CLI logger.
func (c *CLI) installHooks() {
	observability.SetBoardHooks(logBoardHooks{logger: c.Logger})
	observability.SetFeedHooks(logFeedHooks{logger: c.Logger})
	observability.SetCacheHooks(logCacheHooks{logger: c.Logger})
}
