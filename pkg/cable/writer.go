package cable

import "github.com/cabal-club/cable/pkg/varint"

// writer builds a message body in a growable scratch buffer. It exists
// so a long channel name, a big text body or a large hash array can
// never overflow or silently truncate: capacity doubles whenever an
// append would run past the end.
type writer struct {
	buf []byte
}

func newWriter() *writer {
	return &writer{buf: make([]byte, 0, DefaultBufferSize)}
}

// len returns the number of bytes written so far, which is also the
// offset the next write lands at.
func (w *writer) len() int {
	return len(w.buf)
}

func (w *writer) writeVarint(n uint64) {
	w.buf = varint.Encode(w.buf, n)
}

func (w *writer) writeBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *writer) writeString(s string) {
	w.writeVarint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// reserve appends n zero bytes and returns the offset of the reserved
// region. The post codec uses it to leave room for the signature, which
// is computed only once the rest of the message has been written.
func (w *writer) reserve(n int) int {
	offset := len(w.buf)
	w.buf = append(w.buf, make([]byte, n)...)
	return offset
}

// bytes returns the accumulated message. The slice aliases the scratch
// buffer; the writer must not be reused after calling it.
func (w *writer) bytes() []byte {
	return w.buf
}

// frame prepends the varint length of the accumulated body, producing a
// finished cablegram.
func (w *writer) frame() []byte {
	framed := varint.Encode(make([]byte, 0, varint.EncodedLen(uint64(len(w.buf)))+len(w.buf)), uint64(len(w.buf)))
	return append(framed, w.buf...)
}
