package options

const (
	// DefaultPath is where the database file is created when no path is given.
	DefaultPath = "/var/lib/twdb/database.twd"

	// DefaultBlockSize is the size in bytes of every block in the file, matching
	// the block size the original format was designed against. Tests may override
	// it to exercise eviction and split logic against a much smaller file.
	DefaultBlockSize uint32 = 4096

	// MinBlockSize is the smallest block size WithBlockSize will accept.
	MinBlockSize uint32 = 256

	// MaxBlockSize is the largest block size WithBlockSize will accept.
	MaxBlockSize uint32 = 65536

	// DefaultCacheBlocks is the number of blocks the LRU page cache holds in
	// memory before it starts evicting the least recently used block, writing
	// it back first if it is dirty.
	DefaultCacheBlocks = 256

	// MinCacheBlocks is the smallest cache size allowed; below this a single
	// directory descend can thrash the cache against itself.
	MinCacheBlocks = 8

	// DefaultPathDelimiter is the character that separates path components in
	// a hierarchical-DB path string, matching the filesystem paths the database
	// is normally used to mirror.
	DefaultPathDelimiter = '/'
)

// defaultOptions holds the configuration used when Open is called with no
// OptionFunc arguments.
var defaultOptions = Options{
	Path:           DefaultPath,
	BlockSize:      DefaultBlockSize,
	CacheBlocks:    DefaultCacheBlocks,
	PathDelimiter:  DefaultPathDelimiter,
	CaseSensitive:  true,
	TruncateOnOpen: false,
}

// NewDefaultOptions returns a copy of the package's default configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
