package cable

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReqID() []byte {
	return []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
}

func TestHashRequestRoundTrip(t *testing.T) {
	reqid := make([]byte, ReqIDSize)
	hashes := [][]byte{
		bytes.Repeat([]byte{0xAA}, HashSize),
		bytes.Repeat([]byte{0xBB}, HashSize),
	}

	frame, err := CreateHashRequest(reqid, 3, hashes)
	require.NoError(t, err)

	// type(1) + reqid(16) + ttl(1) + count(1) + hashes(64)
	assert.Equal(t, byte(83), frame[0], "declared msgLen")
	assert.Len(t, frame, 84)

	req, err := ParseHashRequest(frame)
	require.NoError(t, err)

	assert.Equal(t, reqid, req.ReqID)
	assert.Equal(t, int64(3), req.TTL)
	assert.Equal(t, hashes, req.Hashes)
}

func TestHashRequestRejectsBadHash(t *testing.T) {
	hashes := [][]byte{
		bytes.Repeat([]byte{0xAA}, HashSize),
		bytes.Repeat([]byte{0xBB}, HashSize-3),
	}

	_, err := CreateHashRequest(testReqID(), 3, hashes)
	assert.ErrorIs(t, err, ErrInvalidHashArray)
}

func TestCancelRequestRoundTrip(t *testing.T) {
	reqid := testReqID()

	frame, err := CreateCancelRequest(reqid)
	require.NoError(t, err)

	// The reqid sits immediately after the one-byte length prefix and
	// the one-byte type tag.
	assert.Equal(t, reqid, frame[2:2+ReqIDSize])

	msgType, err := PeekType(frame)
	require.NoError(t, err)
	assert.Equal(t, MsgTypeCancelRequest, msgType)

	req, err := ParseCancelRequest(frame)
	require.NoError(t, err)
	assert.Equal(t, reqid, req.ReqID)
}

func TestHashResponseRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		hashes [][]byte
	}{
		{"empty", [][]byte{}},
		{"single", [][]byte{bytes.Repeat([]byte{0x11}, HashSize)}},
		{"several", [][]byte{
			bytes.Repeat([]byte{0x11}, HashSize),
			bytes.Repeat([]byte{0x22}, HashSize),
			bytes.Repeat([]byte{0x33}, HashSize),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := CreateHashResponse(testReqID(), tt.hashes)
			require.NoError(t, err)

			resp, err := ParseHashResponse(frame)
			require.NoError(t, err)

			assert.Equal(t, testReqID(), resp.ReqID)
			require.Len(t, resp.Hashes, len(tt.hashes))
			for i := range tt.hashes {
				assert.Equal(t, tt.hashes[i], resp.Hashes[i])
			}
		})
	}
}

func TestDataResponseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data [][]byte
	}{
		{"no payloads", [][]byte{}},
		{"zero length payload", [][]byte{[]byte("hi"), {}}},
		{"leading empty", [][]byte{{}, []byte("hello")}},
		{"large payload", [][]byte{bytes.Repeat([]byte{0xEE}, 5000)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := CreateDataResponse(testReqID(), tt.data)
			require.NoError(t, err)

			resp, err := ParseDataResponse(frame)
			require.NoError(t, err)

			assert.Equal(t, testReqID(), resp.ReqID)
			require.Len(t, resp.Data, len(tt.data))
			for i := range tt.data {
				assert.Equal(t, []byte(tt.data[i]), resp.Data[i])
			}
		})
	}
}

func TestDataResponsePayloadOverrun(t *testing.T) {
	frame, err := CreateDataResponse(testReqID(), [][]byte{[]byte("hi")})
	require.NoError(t, err)

	// Inflate the last payload's declared length past the frame end.
	tampered := append([]byte{}, frame...)
	tampered[len(tampered)-3] = 0x7F

	_, err = ParseDataResponse(tampered)
	assert.ErrorIs(t, err, ErrFrameLengthMismatch)
}

func TestTimeRangeRequestRoundTrip(t *testing.T) {
	frame, err := CreateTimeRangeRequest(testReqID(), 1, "default", 1000, 2000, 20)
	require.NoError(t, err)

	req, err := ParseTimeRangeRequest(frame)
	require.NoError(t, err)

	assert.Equal(t, testReqID(), req.ReqID)
	assert.Equal(t, int64(1), req.TTL)
	assert.Equal(t, "default", req.Channel)
	assert.Equal(t, int64(1000), req.TimeStart)
	assert.Equal(t, int64(2000), req.TimeEnd)
	assert.Equal(t, int64(20), req.Limit)
}

// Channel names are length-prefixed by UTF-8 byte count, not rune count.
func TestTimeRangeRequestMultibyteChannel(t *testing.T) {
	channel := "café-général"

	frame, err := CreateTimeRangeRequest(testReqID(), 1, channel, 0, 0, 0)
	require.NoError(t, err)

	req, err := ParseTimeRangeRequest(frame)
	require.NoError(t, err)
	assert.Equal(t, channel, req.Channel)
}

func TestChannelStateRequestRoundTrip(t *testing.T) {
	frame, err := CreateChannelStateRequest(testReqID(), 4, "music", 50, 1)
	require.NoError(t, err)

	req, err := ParseChannelStateRequest(frame)
	require.NoError(t, err)

	assert.Equal(t, testReqID(), req.ReqID)
	assert.Equal(t, int64(4), req.TTL)
	assert.Equal(t, "music", req.Channel)
	assert.Equal(t, int64(50), req.Limit)
	assert.Equal(t, int64(1), req.Updates)
}

func TestChannelListRequestRoundTrip(t *testing.T) {
	frame, err := CreateChannelListRequest(testReqID(), 2, 0)
	require.NoError(t, err)

	req, err := ParseChannelListRequest(frame)
	require.NoError(t, err)

	assert.Equal(t, testReqID(), req.ReqID)
	assert.Equal(t, int64(2), req.TTL)
	assert.Equal(t, int64(0), req.Limit)
}

func TestParseRejectsWrongType(t *testing.T) {
	frame, err := CreateCancelRequest(testReqID())
	require.NoError(t, err)

	_, err = ParseHashRequest(frame)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestCreateValidatesBeforeWriting(t *testing.T) {
	_, err := CreateHashRequest(make([]byte, ReqIDSize-1), 3, nil)
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = CreateHashRequest(testReqID(), -1, nil)
	assert.ErrorIs(t, err, ErrNotAnInteger)

	_, err = CreateTimeRangeRequest(testReqID(), 1, string([]byte{0xFF}), 0, 0, 0)
	assert.ErrorIs(t, err, ErrNotAString)

	_, err = CreateChannelListRequest(testReqID(), 1, -7)
	assert.ErrorIs(t, err, ErrNotAnInteger)
}

func TestParseHashRequestCountOverrun(t *testing.T) {
	frame, err := CreateHashRequest(testReqID(), 0, [][]byte{bytes.Repeat([]byte{0x0A}, HashSize)})
	require.NoError(t, err)

	// Claim two hashes while only one is present.
	tampered := append([]byte{}, frame...)
	tampered[1+1+ReqIDSize+1] = 0x02

	_, err = ParseHashRequest(tampered)
	assert.ErrorIs(t, err, ErrFrameLengthMismatch)
}
