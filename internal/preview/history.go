package preview

// History is the back/forward stack of the preview window.
type History struct {
	entries []string
	pos     int
}

// NewHistory starts at start when it is non-empty.
func NewHistory(start string) *History {
	h := &History{pos: -1}
	if start != "" {
		h.Visit(start)
	}
	return h
}

// Visit drops any forward entries and pushes url. Revisiting the current URL is a no-op.
func (h *History) Visit(url string) {
	if url == "" {
		return
	}
	if h.pos >= 0 && h.entries[h.pos] == url {
		return
	}
	h.entries = append(h.entries[:h.pos+1], url)
	h.pos = len(h.entries) - 1
}

func (h *History) Current() string {
	if h.pos < 0 {
		return ""
	}
	return h.entries[h.pos]
}

func (h *History) CanBack() bool {
	return h.pos > 0
}

func (h *History) CanForward() bool {
	return h.pos >= 0 && h.pos < len(h.entries)-1
}

// Back moves one entry back and returns the new current URL.
func (h *History) Back() (string, bool) {
	if !h.CanBack() {
		return h.Current(), false
	}
	h.pos--
	return h.entries[h.pos], true
}

func (h *History) Forward() (string, bool) {
	if !h.CanForward() {
		return h.Current(), false
	}
	h.pos++
	return h.entries[h.pos], true
}

func (h *History) Len() int {
	return len(h.entries)
}
