package streamselect

import (
	"context"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// RuleCache keeps parsed rule files in memory and invalidates entries when
// the underlying file changes. Concurrent loads of the same path are
// deduplicated with singleflight.
type RuleCache struct {
	log     zerolog.Logger
	watcher *fsnotify.Watcher
	group   singleflight.Group

	mu    sync.RWMutex
	rules map[string][]Rule

	done chan struct{}
}

func NewRuleCache(log zerolog.Logger) (*RuleCache, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	c := &RuleCache{
		log:     log,
		watcher: watcher,
		rules:   make(map[string][]Rule),
		done:    make(chan struct{}),
	}
	go c.watch()
	return c, nil
}

// Get returns the parsed rules for path, loading and watching the file on the
// first request.
func (c *RuleCache) Get(ctx context.Context, path string) ([]Rule, error) {
	c.mu.RLock()
	cached, ok := c.rules[path]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := c.group.Do(path, func() (interface{}, error) {
		rules, err := readRules(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := c.watcher.Add(path); err != nil {
			c.log.Warn().Err(err).Str("file", path).Msg("cannot watch rule file, caching anyway")
		}
		c.mu.Lock()
		c.rules[path] = rules
		c.mu.Unlock()
		return rules, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Rule), nil
}

func (c *RuleCache) watch() {
	for {
		select {
		case <-c.done:
			return
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename|fsnotify.Create) != 0 {
				c.mu.Lock()
				delete(c.rules, event.Name)
				c.mu.Unlock()
				c.log.Debug().Str("file", event.Name).Msg("rule file changed, cache invalidated")
			}
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.log.Warn().Err(err).Msg("rule file watcher error")
		}
	}
}

// Close stops the watcher goroutine.
func (c *RuleCache) Close() error {
	close(c.done)
	return c.watcher.Close()
}
