// Package post defines the post record and its filtering rules.
package post

import "strings"

// PreviewLimit is the number of body characters shown in list rows.
const PreviewLimit = 100

// Post represents a single record received from the post source.
type Post struct {
	ID    int
	Title string
	Body  string
}

// Matches reports whether the lowercased query is a substring of the
// lowercased title or body. An empty query matches every post.
func Matches(p Post, query string) bool {
	return matchesLower(p, strings.ToLower(query))
}

func matchesLower(p Post, q string) bool {
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Body), q)
}

// Filter returns the posts matching query in their input order.
// The returned slice never shares a backing array with posts.
func Filter(posts []Post, query string) []Post {
	result := make([]Post, 0, len(posts))
	if query == "" {
		return append(result, posts...)
	}
	q := strings.ToLower(query)
	for _, p := range posts {
		if matchesLower(p, q) {
			result = append(result, p)
		}
	}
	return result
}

// Preview returns the first limit characters of body.
func Preview(body string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(body)
	if len(runes) <= limit {
		return body
	}
	return string(runes[:limit])
}
