package transcript

// Add folds one entry into the stats.
func (s *Stats) Add(e Entry) {
	if s.Sessions == nil {
		s.Sessions = make(map[string]bool)
	}
	if s.ToolCounts == nil {
		s.ToolCounts = make(map[string]int)
	}

	if e.HasTime() {
		if s.StartTime.IsZero() || e.Time.Before(s.StartTime) {
			s.StartTime = e.Time
		}
		if s.EndTime.IsZero() || e.Time.After(s.EndTime) {
			s.EndTime = e.Time
		}
	}

	if e.SessionID != "" {
		s.Sessions[e.SessionID] = true
	}
	s.CostUSD += e.CostUSD

	switch e.Type {
	case "user":
		// Only count actual user messages, not tool results
		if len(ToolResults(e.Message)) == 0 {
			s.UserMessages++
		}
	case "assistant":
		s.AssistantMessages++
		for _, tu := range ToolUses(e.Message) {
			s.ToolUses++
			s.ToolCounts[tu.Name]++
		}
	}
}

// Merge folds other into s.
func (s *Stats) Merge(other Stats) {
	if s.Sessions == nil {
		s.Sessions = make(map[string]bool)
	}
	if s.ToolCounts == nil {
		s.ToolCounts = make(map[string]int)
	}
	for id := range other.Sessions {
		s.Sessions[id] = true
	}
	for name, n := range other.ToolCounts {
		s.ToolCounts[name] += n
	}
	s.UserMessages += other.UserMessages
	s.AssistantMessages += other.AssistantMessages
	s.ToolUses += other.ToolUses
	s.CostUSD += other.CostUSD
	if !other.StartTime.IsZero() && (s.StartTime.IsZero() || other.StartTime.Before(s.StartTime)) {
		s.StartTime = other.StartTime
	}
	if !other.EndTime.IsZero() && (s.EndTime.IsZero() || other.EndTime.After(s.EndTime)) {
		s.EndTime = other.EndTime
	}
}

// Messages returns the user+assistant message count.
func (s Stats) Messages() int {
	return s.UserMessages + s.AssistantMessages
}
