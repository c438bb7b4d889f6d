package page

import (
	"context"
	"sync"
	"time"
)

// SlideInterval is how long each background image stays up
const SlideInterval = 20 * time.Second

// Slideshow tracks which gallery image is showing. The index advances
// modulo the gallery length and stays 0 for an empty gallery.
type Slideshow struct {
	interval time.Duration

	mu      sync.Mutex
	index   int
	length  int
	restart chan struct{}
}

// NewSlideshow creates a slideshow over length images
func NewSlideshow(length int, interval time.Duration) *Slideshow {
	if interval <= 0 {
		interval = SlideInterval
	}
	return &Slideshow{
		interval: interval,
		length:   max(length, 0),
		restart:  make(chan struct{}, 1),
	}
}

// Index returns the current image index
func (s *Slideshow) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Tick advances to the next image and returns its index
func (s *Slideshow) Tick() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.length == 0 {
		s.index = 0
		return 0
	}
	s.index = (s.index + 1) % s.length
	return s.index
}

// SetLength changes the gallery size. A running timer starts a fresh
// interval when the size actually changes.
func (s *Slideshow) SetLength(length int) {
	length = max(length, 0)

	s.mu.Lock()
	changed := length != s.length
	s.length = length
	if length == 0 {
		s.index = 0
	} else {
		s.index %= length
	}
	s.mu.Unlock()

	if changed {
		select {
		case s.restart <- struct{}{}:
		default:
		}
	}
}

// Run ticks every interval until ctx is done, calling onTick with each new
// index. The timer is released when Run returns.
func (s *Slideshow) Run(ctx context.Context, onTick func(int)) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.restart:
			ticker.Reset(s.interval)
		case <-ticker.C:
			idx := s.Tick()
			if onTick != nil {
				onTick(idx)
			}
		}
	}
}
