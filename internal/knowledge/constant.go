package knowledge

import "time"

const (
	DefaultMaxPassages = 5
	DefaultCacheSize   = 256
	DefaultCacheTTL    = 5 * time.Minute

	// minTermLen drops short words from lexical scoring.
	minTermLen = 3

	PayloadText   = "text"
	PayloadSource = "source"

	LogPrefixIngest = "internal.knowledge.Ingest"
)

// SupportedExtensions are the file types FileRetriever indexes.
var SupportedExtensions = map[string]bool{
	".md":  true,
	".txt": true,
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "into": true, "our": true, "are": true,
	"was": true, "you": true, "your": true, "build": true, "make": true,
}
