package session

// State is the persisted part of a session. The pane arrangement itself is
// rebuilt fresh each run; only content history survives restarts.
type State struct {
	LastContent   string   `json:"last_content,omitempty"`
	RecentContent []string `json:"recent_content,omitempty"`
	ShowStatus    bool     `json:"show_status"`
}

const maxRecent = 20

// Default returns the default session state.
func Default() State {
	return State{
		ShowStatus: true,
	}
}

// Touch records h (a content handle string) as the most recently opened
// content, keeping the recency list deduplicated and bounded.
func (s *State) Touch(h string) {
	if h == "" {
		return
	}
	s.LastContent = h

	recent := make([]string, 0, len(s.RecentContent)+1)
	recent = append(recent, h)
	for _, r := range s.RecentContent {
		if r != h {
			recent = append(recent, r)
		}
	}
	if len(recent) > maxRecent {
		recent = recent[:maxRecent]
	}
	s.RecentContent = recent
}
