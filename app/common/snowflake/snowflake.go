// Package snowflake hands out the ids that tag each index rebuild run.
package snowflake

import (
	"hash/fnv"
	"os"
	"sync"

	bwsnowflake "github.com/bwmarrin/snowflake"
)

var (
	mu   sync.Mutex
	node *bwsnowflake.Node
)

// SetNodeID pins the node part of the ids (0-1023). Call it once at bootstrap when
// several indexer hosts share one Kafka topic.
func SetNodeID(id int64) error {
	n, err := bwsnowflake.NewNode(id & 0x3FF)
	if err != nil {
		return err
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

func hostNode() *bwsnowflake.Node {
	host, _ := os.Hostname()
	h := fnv.New32a()
	_, _ = h.Write([]byte(host))
	n, err := bwsnowflake.NewNode(int64(h.Sum32()) & 0x3FF)
	if err != nil {
		n, _ = bwsnowflake.NewNode(1)
	}
	return n
}

// NextRunID returns a new, time ordered run id.
func NextRunID() int64 {
	mu.Lock()
	if node == nil {
		node = hostNode()
	}
	n := node
	mu.Unlock()
	return n.Generate().Int64()
}
