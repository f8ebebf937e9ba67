package memory

import (
	"context"
	"fmt"
	"sync"
)

// Images is an in-memory image host. Uploaded data URIs are kept by URL.
type Images struct {
	mu      sync.Mutex
	objects map[string]string
	seq     int
	Err     error
}

func NewImages() *Images {
	return &Images{objects: make(map[string]string)}
}

func (s *Images) Upload(_ context.Context, dataURI string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	s.seq++
	url := fmt.Sprintf("https://images.test/%d", s.seq)
	s.objects[url] = dataURI
	return url, nil
}

func (s *Images) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.objects, url)
	return nil
}

// Has reports whether url is currently hosted.
func (s *Images) Has(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[url]
	return ok
}

// Len returns the number of hosted images.
func (s *Images) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
