package token

// Source is the minimal contract the lexer exposes to build a Stream: a
// one-shot iterator that yields tokens in order and a final terminating
// error (nil on success).
//
// This mirrors the "explicit iterator, no coroutine" redesign direction in
// spec.md §9: the lexer never materializes a full token slice, and Stream
// never rescans past what it has buffered.
type Source interface {
	// Next returns the next token, or an EOF-kind token once exhausted.
	// A non-nil error is terminal: the Source must keep returning it (or
	// stop being called) afterward.
	Next() (Token, error)
}

// ringSize is the number of tokens Stream buffers ahead of the current
// position. spec.md §4.2 bounds parser lookahead at two tokens.
const ringSize = 3 // current + 2 lookahead

// Stream provides bounded lookahead (offsets 0, 1, 2) over a Source,
// buffering internally over the one-shot iterator. It never materializes
// the entire token sequence.
type Stream struct {
	src  Source
	buf  [ringSize]Token
	n    int // number of valid entries in buf, starting at index 0
	err  error
	done bool

	// mark/rewind support, used only for bounded disambiguation (e.g.
	// telling `(?P<name>` apart from `(?P=name)` apart from `(?P>name)`).
	// A mark can only be set when the tokens it needs to rewind to are
	// still resident in buf, i.e. within the 2-token lookahead window.
	markSet bool
	markBuf [ringSize]Token
	markN   int
}

// NewStream constructs a Stream over src and primes its lookahead buffer.
func NewStream(src Source) *Stream {
	s := &Stream{src: src}
	s.fill()
	return s
}

// fill tops the ring buffer back up to ringSize entries (or until EOF/error).
func (s *Stream) fill() {
	for s.n < ringSize && !s.done {
		tok, err := s.src.Next()
		if err != nil {
			s.err = err
			s.done = true
			return
		}
		s.buf[s.n] = tok
		s.n++
		if tok.Kind == EOF {
			s.done = true
		}
	}
}

// Peek returns the token n positions ahead of the current one (0 = current).
// n must be 0, 1, or 2. Peeking past the end of input yields repeated EOF
// tokens.
func (s *Stream) Peek(n int) Token {
	if n < 0 || n >= ringSize {
		panic("token.Stream.Peek: lookahead out of bounds")
	}
	if n < s.n {
		return s.buf[n]
	}
	if s.n == 0 {
		return Token{Kind: EOF}
	}
	return s.buf[s.n-1]
}

// Err returns the terminal lexer error, if any, once it has been reached by
// Peek/Consume.
func (s *Stream) Err() error {
	return s.err
}

// Consume advances past the current token and returns it.
func (s *Stream) Consume() Token {
	cur := s.Peek(0)
	if s.n > 0 {
		copy(s.buf[:], s.buf[1:s.n])
		s.n--
		s.fill()
	}
	return cur
}

// Mark snapshots the current lookahead window so a bounded disambiguation
// can rewind to it. Only one mark may be outstanding at a time.
func (s *Stream) Mark() {
	s.markBuf = s.buf
	s.markN = s.n
	s.markSet = true
}

// Rewind restores the lookahead window captured by the last Mark. It is an
// error (no-op) to call Rewind without an outstanding Mark.
func (s *Stream) Rewind() {
	if !s.markSet {
		return
	}
	s.buf = s.markBuf
	s.n = s.markN
	s.markSet = false
}

// DiscardMark drops a pending mark without rewinding to it.
func (s *Stream) DiscardMark() {
	s.markSet = false
}
