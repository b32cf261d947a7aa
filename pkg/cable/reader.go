package cable

import "github.com/cabal-club/cable/pkg/varint"

// reader walks a received frame with an explicit cursor, validating
// every read against the buffer bounds before consuming. Parsers stop at
// the first violated contract instead of returning garbage fields.
type reader struct {
	buf    []byte
	offset int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

// remaining returns the number of unconsumed bytes.
func (r *reader) remaining() int {
	return len(r.buf) - r.offset
}

func (r *reader) readVarint() (uint64, error) {
	value, n, err := varint.Decode(r.buf, r.offset)
	if err != nil {
		return 0, err
	}
	r.offset += n
	return value, nil
}

// readBytes consumes exactly n bytes and returns a copy, so records
// never alias the network buffer they were parsed from.
func (r *reader) readBytes(n int, param string) ([]byte, error) {
	if r.remaining() < n {
		return nil, sizeErr(param, n, r.remaining())
	}
	out := make([]byte, n)
	copy(out, r.buf[r.offset:r.offset+n])
	r.offset += n
	return out, nil
}

// readString consumes a varint length prefix followed by that many bytes
// of UTF-8.
func (r *reader) readString(param string) (string, error) {
	length, err := r.readVarint()
	if err != nil {
		return "", err
	}
	if uint64(r.remaining()) < length {
		return "", sizeErr(param, int(length), r.remaining())
	}
	s := string(r.buf[r.offset : r.offset+int(length)])
	r.offset += int(length)
	if err := assertString(s, param); err != nil {
		return "", err
	}
	return s, nil
}
