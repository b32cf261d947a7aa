package cable

import "fmt"

// The seven swarm query/response messages. Each type has a free
// CreateX/ParseX pair: create validates every argument before writing a
// single byte, parse validates every field before consuming the next.
//
// Common layout: [msgLen][msgType][reqid] followed by type-specific
// fields. All records are built fresh per call and never mutated after.

// HashRequest asks peers for the content of a set of hashes.
type HashRequest struct {
	ReqID  []byte
	TTL    int64
	Hashes [][]byte
}

// CancelRequest tells peers to stop serving a prior reqid.
type CancelRequest struct {
	ReqID []byte
}

// HashResponse answers a HashRequest with the hashes a peer holds.
type HashResponse struct {
	ReqID  []byte
	Hashes [][]byte
}

// DataResponse carries raw post payloads back to a requester.
type DataResponse struct {
	ReqID []byte
	Data  [][]byte
}

// TimeRangeRequest asks for posts in a channel between two timestamps.
type TimeRangeRequest struct {
	ReqID     []byte
	TTL       int64
	Channel   string
	TimeStart int64
	TimeEnd   int64
	Limit     int64
}

// ChannelStateRequest bootstraps and subscribes to a channel's metadata.
type ChannelStateRequest struct {
	ReqID   []byte
	TTL     int64
	Channel string
	Limit   int64
	Updates int64
}

// ChannelListRequest asks a peer to enumerate the channels it knows.
type ChannelListRequest struct {
	ReqID []byte
	TTL   int64
	Limit int64
}

// queryWriter starts a query body: type tag then reqid.
func queryWriter(msgType uint64, reqid []byte) *writer {
	w := newWriter()
	w.writeVarint(msgType)
	w.writeBytes(reqid)
	return w
}

// parseQuery unwraps frame, checks the type tag against want and reads
// the reqid, leaving the reader at the first type-specific field.
func parseQuery(frame []byte, want uint64) (*reader, []byte, error) {
	r, err := unwrapBody(frame)
	if err != nil {
		return nil, nil, err
	}

	msgType, err := r.readVarint()
	if err != nil {
		return nil, nil, err
	}
	if msgType != want {
		return nil, nil, typeErr(want, msgType)
	}

	reqid, err := r.readBytes(ReqIDSize, "reqid")
	if err != nil {
		return nil, nil, err
	}

	return r, reqid, nil
}

// CreateHashRequest serializes a request for the posts behind hashes,
// forwarded up to ttl hops.
func CreateHashRequest(reqid []byte, ttl int64, hashes [][]byte) ([]byte, error) {
	if err := assertFixedSize(reqid, ReqIDSize, "reqid"); err != nil {
		return nil, err
	}
	if err := assertInteger(ttl, "ttl"); err != nil {
		return nil, err
	}
	if err := assertHashArray(hashes); err != nil {
		return nil, err
	}

	w := queryWriter(MsgTypeHashRequest, reqid)
	w.writeVarint(uint64(ttl))
	w.writeVarint(uint64(len(hashes)))
	for _, h := range hashes {
		w.writeBytes(h)
	}

	return w.frame(), nil
}

// ParseHashRequest decodes a HASH_REQUEST frame.
func ParseHashRequest(frame []byte) (*HashRequest, error) {
	r, reqid, err := parseQuery(frame, MsgTypeHashRequest)
	if err != nil {
		return nil, err
	}

	ttl, err := r.readVarint()
	if err != nil {
		return nil, err
	}

	hashes, err := readHashArray(r)
	if err != nil {
		return nil, err
	}

	return &HashRequest{ReqID: reqid, TTL: int64(ttl), Hashes: hashes}, nil
}

// CreateCancelRequest serializes a cancellation of a prior request. The
// body is the reqid alone, written immediately after the type tag.
func CreateCancelRequest(reqid []byte) ([]byte, error) {
	if err := assertFixedSize(reqid, ReqIDSize, "reqid"); err != nil {
		return nil, err
	}

	return queryWriter(MsgTypeCancelRequest, reqid).frame(), nil
}

// ParseCancelRequest decodes a CANCEL_REQUEST frame.
func ParseCancelRequest(frame []byte) (*CancelRequest, error) {
	_, reqid, err := parseQuery(frame, MsgTypeCancelRequest)
	if err != nil {
		return nil, err
	}

	return &CancelRequest{ReqID: reqid}, nil
}

// CreateHashResponse serializes the set of hashes a peer can serve for a
// prior HASH_REQUEST.
func CreateHashResponse(reqid []byte, hashes [][]byte) ([]byte, error) {
	if err := assertFixedSize(reqid, ReqIDSize, "reqid"); err != nil {
		return nil, err
	}
	if err := assertHashArray(hashes); err != nil {
		return nil, err
	}

	w := queryWriter(MsgTypeHashResponse, reqid)
	w.writeVarint(uint64(len(hashes)))
	for _, h := range hashes {
		w.writeBytes(h)
	}

	return w.frame(), nil
}

// ParseHashResponse decodes a HASH_RESPONSE frame.
func ParseHashResponse(frame []byte) (*HashResponse, error) {
	r, reqid, err := parseQuery(frame, MsgTypeHashResponse)
	if err != nil {
		return nil, err
	}

	hashes, err := readHashArray(r)
	if err != nil {
		return nil, err
	}

	return &HashResponse{ReqID: reqid, Hashes: hashes}, nil
}

// CreateDataResponse serializes raw post payloads. There is no count
// field: the payload list is bounded by the frame's declared length, so
// zero-length payloads are legal and preserved.
func CreateDataResponse(reqid []byte, data [][]byte) ([]byte, error) {
	if err := assertFixedSize(reqid, ReqIDSize, "reqid"); err != nil {
		return nil, err
	}

	w := queryWriter(MsgTypeDataResponse, reqid)
	for _, d := range data {
		w.writeVarint(uint64(len(d)))
		w.writeBytes(d)
	}

	return w.frame(), nil
}

// ParseDataResponse decodes a DATA_RESPONSE frame. The (dataLen, data)
// pairs are terminated by length accounting: the loop recomputes the
// remaining byte count after every pair and stops exactly when it
// reaches zero. A pair whose declared length runs past the frame means
// the sender's framing is broken and fails with ErrFrameLengthMismatch.
func ParseDataResponse(frame []byte) (*DataResponse, error) {
	r, reqid, err := parseQuery(frame, MsgTypeDataResponse)
	if err != nil {
		return nil, err
	}

	data := [][]byte{}
	for r.remaining() > 0 {
		dataLen, err := r.readVarint()
		if err != nil {
			return nil, err
		}
		if dataLen > uint64(r.remaining()) {
			return nil, fmt.Errorf("%w: payload declares %d bytes, %d remain", ErrFrameLengthMismatch, dataLen, r.remaining())
		}

		d, err := r.readBytes(int(dataLen), "data")
		if err != nil {
			return nil, err
		}
		data = append(data, d)
	}

	return &DataResponse{ReqID: reqid, Data: data}, nil
}

// CreateTimeRangeRequest serializes a range query over a channel's post
// timeline. timeEnd of zero means "and keep the request live".
func CreateTimeRangeRequest(reqid []byte, ttl int64, channel string, timeStart, timeEnd, limit int64) ([]byte, error) {
	if err := assertFixedSize(reqid, ReqIDSize, "reqid"); err != nil {
		return nil, err
	}
	if err := assertString(channel, "channel"); err != nil {
		return nil, err
	}
	if err := assertInteger(ttl, "ttl"); err != nil {
		return nil, err
	}
	if err := assertInteger(timeStart, "timeStart"); err != nil {
		return nil, err
	}
	if err := assertInteger(timeEnd, "timeEnd"); err != nil {
		return nil, err
	}
	if err := assertInteger(limit, "limit"); err != nil {
		return nil, err
	}

	w := queryWriter(MsgTypeTimeRangeRequest, reqid)
	w.writeVarint(uint64(ttl))
	w.writeString(channel)
	w.writeVarint(uint64(timeStart))
	w.writeVarint(uint64(timeEnd))
	w.writeVarint(uint64(limit))

	return w.frame(), nil
}

// ParseTimeRangeRequest decodes a TIME_RANGE_REQUEST frame.
func ParseTimeRangeRequest(frame []byte) (*TimeRangeRequest, error) {
	r, reqid, err := parseQuery(frame, MsgTypeTimeRangeRequest)
	if err != nil {
		return nil, err
	}

	ttl, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	channel, err := r.readString("channel")
	if err != nil {
		return nil, err
	}
	timeStart, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	timeEnd, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	limit, err := r.readVarint()
	if err != nil {
		return nil, err
	}

	return &TimeRangeRequest{
		ReqID:     reqid,
		TTL:       int64(ttl),
		Channel:   channel,
		TimeStart: int64(timeStart),
		TimeEnd:   int64(timeEnd),
		Limit:     int64(limit),
	}, nil
}

// CreateChannelStateRequest serializes a request for a channel's current
// membership and topic, plus up to updates future notifications.
func CreateChannelStateRequest(reqid []byte, ttl int64, channel string, limit, updates int64) ([]byte, error) {
	if err := assertFixedSize(reqid, ReqIDSize, "reqid"); err != nil {
		return nil, err
	}
	if err := assertString(channel, "channel"); err != nil {
		return nil, err
	}
	if err := assertInteger(ttl, "ttl"); err != nil {
		return nil, err
	}
	if err := assertInteger(limit, "limit"); err != nil {
		return nil, err
	}
	if err := assertInteger(updates, "updates"); err != nil {
		return nil, err
	}

	w := queryWriter(MsgTypeChannelStateRequest, reqid)
	w.writeVarint(uint64(ttl))
	w.writeString(channel)
	w.writeVarint(uint64(limit))
	w.writeVarint(uint64(updates))

	return w.frame(), nil
}

// ParseChannelStateRequest decodes a CHANNEL_STATE_REQUEST frame.
func ParseChannelStateRequest(frame []byte) (*ChannelStateRequest, error) {
	r, reqid, err := parseQuery(frame, MsgTypeChannelStateRequest)
	if err != nil {
		return nil, err
	}

	ttl, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	channel, err := r.readString("channel")
	if err != nil {
		return nil, err
	}
	limit, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	updates, err := r.readVarint()
	if err != nil {
		return nil, err
	}

	return &ChannelStateRequest{
		ReqID:   reqid,
		TTL:     int64(ttl),
		Channel: channel,
		Limit:   int64(limit),
		Updates: int64(updates),
	}, nil
}

// CreateChannelListRequest serializes a request to enumerate known
// channels, at most limit of them.
func CreateChannelListRequest(reqid []byte, ttl, limit int64) ([]byte, error) {
	if err := assertFixedSize(reqid, ReqIDSize, "reqid"); err != nil {
		return nil, err
	}
	if err := assertInteger(ttl, "ttl"); err != nil {
		return nil, err
	}
	if err := assertInteger(limit, "limit"); err != nil {
		return nil, err
	}

	w := queryWriter(MsgTypeChannelListRequest, reqid)
	w.writeVarint(uint64(ttl))
	w.writeVarint(uint64(limit))

	return w.frame(), nil
}

// ParseChannelListRequest decodes a CHANNEL_LIST_REQUEST frame.
func ParseChannelListRequest(frame []byte) (*ChannelListRequest, error) {
	r, reqid, err := parseQuery(frame, MsgTypeChannelListRequest)
	if err != nil {
		return nil, err
	}

	ttl, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	limit, err := r.readVarint()
	if err != nil {
		return nil, err
	}

	return &ChannelListRequest{ReqID: reqid, TTL: int64(ttl), Limit: int64(limit)}, nil
}

// readHashArray reads a varint count followed by that many fixed-size
// hashes.
func readHashArray(r *reader) ([][]byte, error) {
	count, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	if count > uint64(r.remaining())/HashSize {
		return nil, fmt.Errorf("%w: %d hashes declared, %d bytes remain", ErrFrameLengthMismatch, count, r.remaining())
	}

	hashes := make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		h, err := r.readBytes(HashSize, "hash")
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}
	return hashes, nil
}
