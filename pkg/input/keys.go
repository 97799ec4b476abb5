package input

import "github.com/vanderheijden86/annualreport/pkg/nav"

// KeyIntent maps a bubbletea key string to an intent. handled reports
// that the key belongs to navigation and must not fall through to other
// handlers, even when it resolves to nothing during a transition.
func KeyIntent(key string, st nav.State) (in Intent, handled bool) {
	switch key {
	case "down", "right", "pgdown", " ":
		in = NextIntent
	case "up", "left", "pgup":
		in = PrevIntent
	case "home":
		in = HomeIntent
	default:
		return NoIntent, false
	}
	if st.Transitioning {
		return NoIntent, true
	}
	return in, true
}
