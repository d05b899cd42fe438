// Package options provides data structures and functions for configuring the
// database core. It defines the parameters that control how the backing file
// is opened, how large each block is, how many blocks the page cache holds,
// and how directory paths inside the hierarchical DB are interpreted.
package options

import "strings"

// Options defines the configuration parameters for opening a database.
type Options struct {
	// Path is the backing file the block file is opened against. Open
	// rejects an empty path.
	Path string `json:"path"`

	// BlockSize is the size in bytes of every block in the file. The file
	// does not record its block size, so every Open, of a new or an existing
	// file, uses the value configured here.
	BlockSize uint32 `json:"blockSize"`

	// CacheBlocks is how many blocks the LRU page cache keeps resident before
	// evicting the least recently used block, writing it back first if it is
	// dirty, to make room.
	CacheBlocks int `json:"cacheBlocks"`

	// PathDelimiter is the rune that separates components of a hierarchical-DB
	// path string, e.g. '/' for "/etc/passwd".
	PathDelimiter rune `json:"pathDelimiter"`

	// CaseSensitive controls whether the name table treats two names differing
	// only in case as distinct entries.
	CaseSensitive bool `json:"caseSensitive"`

	// TruncateOnOpen discards any existing file content and starts a fresh,
	// empty database instead of opening the file's existing root.
	TruncateOnOpen bool `json:"truncateOnOpen"`
}

// OptionFunc is a function type that modifies the database's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions applies the package's default configuration values.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.Path = opts.Path
		o.BlockSize = opts.BlockSize
		o.CacheBlocks = opts.CacheBlocks
		o.PathDelimiter = opts.PathDelimiter
		o.CaseSensitive = opts.CaseSensitive
		o.TruncateOnOpen = opts.TruncateOnOpen
	}
}

// WithPath sets the backing file path the block file is opened against.
func WithPath(path string) OptionFunc {
	return func(o *Options) {
		path = strings.TrimSpace(path)
		if path != "" {
			o.Path = path
		}
	}
}

// WithBlockSize sets the block size Open uses for the file. Values
// outside [MinBlockSize, MaxBlockSize] are ignored.
func WithBlockSize(size uint32) OptionFunc {
	return func(o *Options) {
		if size >= MinBlockSize && size <= MaxBlockSize {
			o.BlockSize = size
		}
	}
}

// WithCacheBlocks sets how many blocks the LRU page cache holds resident.
// Values below MinCacheBlocks are ignored.
func WithCacheBlocks(n int) OptionFunc {
	return func(o *Options) {
		if n >= MinCacheBlocks {
			o.CacheBlocks = n
		}
	}
}

// WithPathDelimiter sets the rune that separates hierarchical-DB path
// components. The zero rune is ignored.
func WithPathDelimiter(delim rune) OptionFunc {
	return func(o *Options) {
		if delim != 0 {
			o.PathDelimiter = delim
		}
	}
}

// WithCaseSensitive sets whether the name table distinguishes names that
// differ only in case.
func WithCaseSensitive(sensitive bool) OptionFunc {
	return func(o *Options) {
		o.CaseSensitive = sensitive
	}
}

// WithTruncateOnOpen discards any existing database content on Open instead
// of resuming from the file's existing root.
func WithTruncateOnOpen(truncate bool) OptionFunc {
	return func(o *Options) {
		o.TruncateOnOpen = truncate
	}
}
