package sessions

import "time"

// Flash kinds shown by the layout template.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-time notification attached to a session. It is shown on
// the next rendered page and cleared.
type Flash struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Session is the per-client state referenced by the session cookie. Only
// the ID travels to the browser; username and flash stay server-side.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username,omitempty"`
	Flash     *Flash    `json:"flash,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SignedIn reports whether the session carries a username.
func (s *Session) SignedIn() bool { return s.Username != "" }

// SetFlash replaces the session's flash slot.
func (s *Session) SetFlash(kind, text string) {
	s.Flash = &Flash{Kind: kind, Text: text}
}

// PopFlash returns the pending flash and clears the slot. Callers persist
// the session afterwards so the message shows at most once.
func (s *Session) PopFlash() *Flash {
	f := s.Flash
	s.Flash = nil
	return f
}
