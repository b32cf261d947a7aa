package cable

import (
	"github.com/cabal-club/cable/pkg/crypto"
	"github.com/cabal-club/cable/pkg/varint"
)

// Field sizes in bytes.
const (
	// ReqIDSize is the size of a request correlation identifier.
	ReqIDSize = 16

	// HashSize is the size of a content hash (BLAKE2b-256).
	HashSize = crypto.HashSize

	// Key and signature sizes (Ed25519).
	PublicKeySize = crypto.PublicKeySize
	SecretKeySize = crypto.SecretKeySize
	SignatureSize = crypto.SignatureSize

	// DefaultBufferSize is the initial capacity of the scratch buffer a
	// create call writes into. Buffers grow past it as needed.
	DefaultBufferSize = 1024

	// MaxVarintSize is the maximum encoded size of a single varint field.
	MaxVarintSize = varint.MaxLen
)

// Message types.
const (
	MsgTypeHashResponse        uint64 = 0
	MsgTypeDataResponse        uint64 = 1
	MsgTypeHashRequest         uint64 = 2
	MsgTypeCancelRequest       uint64 = 3
	MsgTypeTimeRangeRequest    uint64 = 4
	MsgTypeChannelStateRequest uint64 = 5
	MsgTypeChannelListRequest  uint64 = 6
)

// Post types.
const (
	PostTypeText   uint64 = 0
	PostTypeDelete uint64 = 1
	PostTypeInfo   uint64 = 2
	PostTypeTopic  uint64 = 3
	PostTypeJoin   uint64 = 4
	PostTypeLeave  uint64 = 5
)
