package widgets

import "time"

// CarouselInterval is the auto-advance period of the department slider.
const CarouselInterval = 5 * time.Second

// Carousel cycles through a fixed number of panels with wrap-around.
type Carousel struct {
	size    int
	current int
}

// NewCarousel returns a carousel over size panels. size must be positive.
func NewCarousel(size int) *Carousel {
	if size <= 0 {
		panic("widgets: carousel needs at least one panel")
	}
	return &Carousel{size: size}
}

// Len returns the number of panels.
func (c *Carousel) Len() int { return c.size }

// Current returns the visible panel index.
func (c *Carousel) Current() int { return c.current }

// Next moves forward, wrapping to the first panel.
func (c *Carousel) Next() { c.current = (c.current + 1) % c.size }

// Prev moves back, wrapping to the last panel.
func (c *Carousel) Prev() { c.current = (c.current - 1 + c.size) % c.size }

// Go jumps to panel i. Out-of-range indices are ignored.
func (c *Carousel) Go(i int) bool {
	if i < 0 || i >= c.size {
		return false
	}
	c.current = i
	return true
}
