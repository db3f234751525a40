// Package problemurl extracts a stable slug and a display title from a
// coding-problem URL. Both the write path (item creation) and the read
// path (title fallback) go through the same functions so the derived
// identifier can never drift between the two.
package problemurl

import (
	"errors"
	"net/url"
	"strings"
)

var (
	ErrInvalidURL       = errors.New("problemurl: invalid url")
	ErrNoProblemSegment = errors.New("problemurl: url has no /problems/ segment")
	ErrEmptySlug        = errors.New("problemurl: empty problem slug")
)

const problemSegment = "/problems/"

type Problem struct {
	Slug  string
	Title string
}

// Parse derives the slug and title from a raw problem URL. The slug is
// the path segment following /problems/, lower-cased and otherwise
// unchanged; it is the per-owner de-duplication key.
func Parse(rawURL string) (Problem, error) {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Problem{}, ErrInvalidURL
	}

	path := strings.ToLower(u.Path)
	idx := strings.Index(path, problemSegment)
	if idx == -1 {
		return Problem{}, ErrNoProblemSegment
	}

	rest := path[idx+len(problemSegment):]
	slug, _, _ := strings.Cut(rest, "/")
	if slug == "" {
		return Problem{}, ErrEmptySlug
	}

	return Problem{Slug: slug, Title: TitleFromSlug(slug)}, nil
}

// TitleFromSlug turns "two-sum" into "Two Sum". Empty tokens are
// dropped; if nothing survives, hyphens become spaces as a last resort.
func TitleFromSlug(slug string) string {
	words := make([]string, 0, 4)
	for _, token := range strings.Split(slug, "-") {
		if token == "" {
			continue
		}
		words = append(words, strings.ToUpper(token[:1])+token[1:])
	}
	if len(words) == 0 {
		return strings.ReplaceAll(slug, "-", " ")
	}
	return strings.Join(words, " ")
}

// Sanitize reduces a URL to origin plus path for display-preserving
// storage, dropping query strings and fragments. Unparseable input is
// returned trimmed so the caller can still surface what was submitted.
func Sanitize(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return trimmed
	}
	return u.Scheme + "://" + u.Host + u.Path
}
