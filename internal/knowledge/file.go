package knowledge

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// FileRetriever scores paragraphs of text files under a directory against
// the query terms. Files are read on every call so edits show up without a
// restart; wrap it in a Cache for hot paths.
type FileRetriever struct {
	root string
}

var _ Retriever = (*FileRetriever)(nil)

// NewFileRetriever creates a retriever rooted at dir.
func NewFileRetriever(dir string) *FileRetriever {
	return &FileRetriever{root: dir}
}

// Location returns the root directory.
func (r *FileRetriever) Location() string {
	return r.root
}

// Retrieve returns up to limit paragraphs sharing terms with query, best
// first. A missing or unreadable root is ErrUnavailable.
func (r *FileRetriever) Retrieve(ctx context.Context, query string, limit int) ([]Passage, error) {
	if limit <= 0 {
		limit = DefaultMaxPassages
	}

	docs, err := r.Documents(ctx)
	if err != nil {
		return nil, err
	}

	terms := Terms(query)
	if len(terms) == 0 {
		return []Passage{}, nil
	}

	scored := make([]Passage, 0, len(docs))
	for _, d := range docs {
		if s := score(terms, d.Text); s > 0 {
			d.Score = s
			scored = append(scored, d)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// Documents reads every supported file under the root and splits it into
// paragraph passages, ordered by path.
func (r *FileRetriever) Documents(ctx context.Context) ([]Passage, error) {
	if r.root == "" {
		return nil, fmt.Errorf("%w: knowledge path not configured", ErrUnavailable)
	}
	info, err := os.Stat(r.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrUnavailable, r.root)
	}

	var out []Passage
	err = filepath.WalkDir(r.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !SupportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			rel = path
		}
		for _, para := range paragraphs(string(raw)) {
			out = append(out, Passage{Source: filepath.ToSlash(rel), Text: para})
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out, nil
}

// Terms lower-cases query and keeps distinct words worth matching on.
func Terms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < minTermLen || stopwords[f] || seen[f] {
			continue
		}
		seen[f] = true
		terms = append(terms, f)
	}
	return terms
}

// score is the fraction of query terms present in text.
func score(terms []string, text string) float64 {
	lower := strings.ToLower(text)
	hits := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}

func paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			out = append(out, block)
		}
	}
	return out
}
