package playground

// StatusStore keeps exactly one display string per widget key. Values are
// overwritten, never queued. It is not safe for concurrent use; the Service
// serializes access.
type StatusStore struct {
	values   map[WidgetKey]string
	defaults map[WidgetKey]string
}

// NewStatusStore seeds every key with its default status.
func NewStatusStore(defaults map[WidgetKey]string) *StatusStore {
	s := &StatusStore{
		values:   make(map[WidgetKey]string, len(widgetKeys)),
		defaults: make(map[WidgetKey]string, len(widgetKeys)),
	}
	for _, key := range widgetKeys {
		s.defaults[key] = defaults[key]
	}
	s.Reset()
	return s
}

// Get returns the current status for key.
func (s *StatusStore) Get(key WidgetKey) string {
	return s.values[key]
}

// Set overwrites the status for key. Keys outside the closed set are ignored.
func (s *StatusStore) Set(key WidgetKey, text string) bool {
	if !key.Valid() {
		return false
	}
	s.values[key] = text
	return true
}

// Reset restores every key to its default.
func (s *StatusStore) Reset() {
	for _, key := range widgetKeys {
		s.values[key] = s.defaults[key]
	}
}

// All returns a copy of every status.
func (s *StatusStore) All() map[WidgetKey]string {
	out := make(map[WidgetKey]string, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}
