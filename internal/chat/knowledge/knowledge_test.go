package knowledge

import (
	"strings"
	"testing"
)

func newService(t *testing.T) *Service {
	t.Helper()
	base, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return NewService(base, NewCache())
}

func TestAnswer_FindsVATArticle(t *testing.T) {
	s := newService(t)

	answer := s.Answer("welke btw-tarieven zijn er?")
	if !strings.Contains(answer, "21%") || !strings.Contains(answer, "9%") {
		t.Fatalf("answer = %q", answer)
	}
}

func TestAnswer_FallsBackWhenUnknown(t *testing.T) {
	s := newService(t)

	answer := s.Answer("xyzzy plugh")
	if answer != fallbackAnswer {
		t.Fatalf("answer = %q", answer)
	}
}

func TestCache_InvalidateClearsMemo(t *testing.T) {
	cache := NewCache()
	cache.set("q", "a")
	if _, ok := cache.get("q"); !ok {
		t.Fatalf("expected cached answer")
	}

	cache.Invalidate()
	if _, ok := cache.get("q"); ok {
		t.Fatalf("expected cache to be empty")
	}
}
