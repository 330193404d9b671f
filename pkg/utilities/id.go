package utilities

import (
	"encoding/hex"
	"regexp"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// ObjectIDLen is the length of a document id in hex characters.
const ObjectIDLen = 24

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewObjectID returns a 24-char lowercase hex document id. The first 4 bytes
// are the KSUID timestamp, so ids sort roughly by creation time; the other 8
// come from the KSUID random payload.
func NewObjectID() string {
	b := ksuid.New().Bytes()
	return hex.EncodeToString(b[:ObjectIDLen/2])
}

// IsObjectID reports whether s has the document id format.
func IsObjectID(s string) bool {
	return objectIDPattern.MatchString(s)
}

// ObjectIDPattern exposes the id format for validators.
func ObjectIDPattern() *regexp.Regexp {
	return objectIDPattern
}

// NewSnowflakeNode returns a generator for request ids. A node id outside the
// snowflake range falls back to node 1.
func NewSnowflakeNode(nodeID int64) *snowflake.Node {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		node, _ = snowflake.NewNode(1)
	}
	return node
}
