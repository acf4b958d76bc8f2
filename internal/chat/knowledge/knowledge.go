// Package knowledge answers product questions from embedded
// documentation with simple keyword scoring.
package knowledge

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

//go:embed docs/*.md
var docsFS embed.FS

// Article is one embedded documentation page.
type Article struct {
	Slug  string
	Title string
	Body  string
}

// Base holds the loaded documentation set.
type Base struct {
	articles []Article
}

// Load reads the embedded documentation pages. The first heading line
// of each page becomes its title.
func Load() (*Base, error) {
	entries, err := fs.ReadDir(docsFS, "docs")
	if err != nil {
		return nil, fmt.Errorf("read docs: %w", err)
	}

	base := &Base{}
	for _, entry := range entries {
		data, err := docsFS.ReadFile("docs/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		body := strings.TrimSpace(string(data))
		title := strings.TrimSuffix(entry.Name(), ".md")
		if strings.HasPrefix(body, "#") {
			line, rest, _ := strings.Cut(body, "\n")
			title = strings.TrimSpace(strings.TrimLeft(line, "# "))
			body = strings.TrimSpace(rest)
		}

		base.articles = append(base.articles, Article{
			Slug:  strings.TrimSuffix(entry.Name(), ".md"),
			Title: title,
			Body:  body,
		})
	}

	return base, nil
}

// Cache memoizes answers per normalized question. It is constructed
// explicitly and handed to the service, so tests and reloads can reset
// it with Invalidate.
type Cache struct {
	mu      sync.RWMutex
	answers map[string]string
}

func NewCache() *Cache {
	return &Cache{answers: make(map[string]string)}
}

func (c *Cache) get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	answer, ok := c.answers[key]
	return answer, ok
}

func (c *Cache) set(key, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[key] = answer
}

// Invalidate drops all memoized answers.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers = make(map[string]string)
}

// Service answers free-text product questions.
type Service struct {
	base  *Base
	cache *Cache
}

func NewService(base *Base, cache *Cache) *Service {
	return &Service{base: base, cache: cache}
}

const fallbackAnswer = "Daar heb ik geen documentatie over. Je kunt facturen, offertes en klanten aanmaken, btw laten uitrekenen en overzichten opvragen."

// Answer scores each article by the question's keywords and returns the
// best match, or a fallback when nothing scores.
func (s *Service) Answer(question string) string {
	key := strings.ToLower(strings.TrimSpace(question))
	if answer, ok := s.cache.get(key); ok {
		return answer
	}

	tokens := keywords(key)

	best := -1
	bestScore := 0
	for i, article := range s.base.articles {
		score := 0
		haystack := strings.ToLower(article.Title + " " + article.Body)
		for _, token := range tokens {
			score += strings.Count(haystack, token)
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	answer := fallbackAnswer
	if best >= 0 {
		article := s.base.articles[best]
		answer = article.Title + "\n\n" + article.Body
	}

	s.cache.set(key, answer)
	return answer
}

func keywords(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(text) {
		token := strings.Trim(field, ".,;:?!'\"")
		if len(token) >= 3 {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
