package nav

// Dot is one navigation dot. Dots exist for every non-sentinel slide.
type Dot struct {
	Index  int
	Active bool
}

// Chrome is the navigation UI derived from the current slide index.
type Chrome struct {
	Index      int
	Count      int
	Progress   float64 // 0..1, index/(count-1)
	Dots       []Dot
	NavVisible bool
	PageNumber int // viewer-facing, content slides start at 1
}

// ProgressPercent is Progress as a width percentage.
func (c Chrome) ProgressPercent() float64 {
	return c.Progress * 100
}

// ActiveDot returns the position of the active dot within Dots, or -1
// when the current slide is a sentinel.
func (c Chrome) ActiveDot() int {
	for i, d := range c.Dots {
		if d.Active {
			return i
		}
	}
	return -1
}

// Derive computes the chrome for index in a deck of count slides. The dot
// set is rebuilt on every call.
func Derive(index, count int) Chrome {
	c := Chrome{
		Index: index,
		Count: count,
	}
	if count > 1 {
		c.Progress = float64(index) / float64(count-1)
	}
	if count > 2 {
		c.Dots = make([]Dot, 0, count-2)
		for i := 1; i < count-1; i++ {
			c.Dots = append(c.Dots, Dot{Index: i, Active: i == index})
		}
	}
	c.NavVisible = !(index == 0 || index == 1 || index == count-1)
	c.PageNumber = max(0, index-1)
	return c
}
