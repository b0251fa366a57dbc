package repostore

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"lukechampine.com/blake3"
)

// Locator resolves a repository key to a directory on local disk.
type Locator interface {
	Dir(key string) (string, error)
}

// ShardedLocator places repositories under Root in 256 shard directories
// named after the first byte of the key's BLAKE3 digest.
type ShardedLocator struct {
	Root string
}

// NewShardedLocator creates a locator rooted at root.
func NewShardedLocator(root string) *ShardedLocator {
	return &ShardedLocator{Root: root}
}

// Dir returns <root>/<shard>/<key>.
func (l *ShardedLocator) Dir(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	sum := blake3.Sum256([]byte(key))
	shard := hex.EncodeToString(sum[:1])
	return filepath.Join(l.Root, shard, key), nil
}

func validateKey(key string) error {
	if key == "" || len(key) > 128 {
		return fmt.Errorf("%w: %q", ErrInvalidLocation, key)
	}
	if strings.HasPrefix(key, ".") || strings.ContainsAny(key, `/\:`) {
		return fmt.Errorf("%w: %q", ErrInvalidLocation, key)
	}
	return nil
}
