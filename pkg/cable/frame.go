package cable

import (
	"fmt"

	"github.com/cabal-club/cable/pkg/varint"
)

// Wrap prepends the varint byte length of body, producing a finished
// cablegram. The declared length covers body only, never the length
// prefix itself.
func Wrap(body []byte) []byte {
	framed := varint.Encode(make([]byte, 0, varint.EncodedLen(uint64(len(body)))+len(body)), uint64(len(body)))
	return append(framed, body...)
}

// Unwrap validates the length prefix of frame and returns the message
// type tag plus the body bytes that follow it, positioned for a
// type-specific parser to continue. It fails with ErrFrameLengthMismatch
// when the declared length disagrees with the bytes actually present:
// a short frame is rejected, never truncated or padded.
func Unwrap(frame []byte) (msgType uint64, rest []byte, err error) {
	r, err := unwrapBody(frame)
	if err != nil {
		return 0, nil, err
	}

	msgType, err = r.readVarint()
	if err != nil {
		return 0, nil, err
	}

	return msgType, r.buf[r.offset:], nil
}

// PeekType decodes only the length prefix and the type tag of a query
// frame, letting a dispatcher route to the right parser without paying
// for a full decode.
func PeekType(frame []byte) (uint64, error) {
	_, n, err := varint.Decode(frame, 0)
	if err != nil {
		return 0, err
	}

	msgType, _, err := varint.Decode(frame, n)
	if err != nil {
		return 0, err
	}

	return msgType, nil
}

// PeekReqID returns the reqid of a query frame without a full parse,
// for correlating responses and cancellations with live requests.
func PeekReqID(frame []byte) ([]byte, error) {
	_, n, err := varint.Decode(frame, 0)
	if err != nil {
		return nil, err
	}

	_, tn, err := varint.Decode(frame, n)
	if err != nil {
		return nil, err
	}

	start := n + tn
	if len(frame) < start+ReqIDSize {
		return nil, sizeErr("reqid", ReqIDSize, len(frame)-start)
	}

	reqid := make([]byte, ReqIDSize)
	copy(reqid, frame[start:start+ReqIDSize])
	return reqid, nil
}

// unwrapBody validates the length prefix and returns a reader positioned
// at the start of the body.
func unwrapBody(frame []byte) (*reader, error) {
	msgLen, n, err := varint.Decode(frame, 0)
	if err != nil {
		return nil, err
	}

	if msgLen != uint64(len(frame)-n) {
		return nil, fmt.Errorf("%w: declared %d bytes, have %d", ErrFrameLengthMismatch, msgLen, len(frame)-n)
	}

	return newReader(frame[n:]), nil
}
