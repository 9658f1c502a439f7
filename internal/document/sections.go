package document

import "iter"

// Sections maps section headers to bodies and remembers the order in which
// headers were first set. Setting an existing header replaces its body in place.
type Sections struct {
	headers []string
	bodies  map[string]string
}

func NewSections() *Sections {
	return &Sections{bodies: make(map[string]string)}
}

// Set stores body under header. A new header is appended; an existing one
// keeps its position.
func (s *Sections) Set(header, body string) {
	if s.bodies == nil {
		s.bodies = make(map[string]string)
	}
	if _, ok := s.bodies[header]; !ok {
		s.headers = append(s.headers, header)
	}
	s.bodies[header] = body
}

// Append adds text to the body stored under header, creating it if needed.
func (s *Sections) Append(header, text string) {
	s.Set(header, s.bodies[header]+text)
}

func (s *Sections) Get(header string) (string, bool) {
	if s == nil {
		return "", false
	}
	body, ok := s.bodies[header]
	return body, ok
}

// Delete removes header, preserving the order of the remaining entries.
func (s *Sections) Delete(header string) {
	if _, ok := s.bodies[header]; !ok {
		return
	}
	delete(s.bodies, header)
	for i, h := range s.headers {
		if h == header {
			s.headers = append(s.headers[:i], s.headers[i+1:]...)
			break
		}
	}
}

func (s *Sections) Len() int {
	if s == nil {
		return 0
	}
	return len(s.headers)
}

// Headers returns a copy of the headers in order.
func (s *Sections) Headers() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.headers))
	copy(out, s.headers)
	return out
}

// All iterates header/body pairs in order.
func (s *Sections) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if s == nil {
			return
		}
		for _, h := range s.headers {
			if !yield(h, s.bodies[h]) {
				return
			}
		}
	}
}
