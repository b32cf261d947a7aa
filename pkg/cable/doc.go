// Package cable implements the wire-format codec for the cable
// peer-to-peer messaging protocol.
//
// The codec covers two message families exchanged between swarm peers:
// queries/responses that drive gossip synchronization, and signed
// content posts attributable to an author's Ed25519 public key.
//
// # Framing
//
// Every message on the wire is a cablegram: a varint byte length
// followed by exactly that many body bytes. The declared length covers
// the body only. A frame whose declared length disagrees with the bytes
// present is rejected outright, never truncated or padded.
//
//	Cablegram   := msgLen:varint | body:bytes[msgLen]
//	Query body  := msgType:varint | reqid:bytes[16] | <type fields>
//	Post body   := publicKey:bytes[32] | signature:bytes[64]
//	               | link:bytes[32] | postType:varint | <type fields>
//	String      := length:varint | utf8:bytes[length]
//	HashArray   := count:varint | (hash:bytes[32]) * count
//
// String lengths are UTF-8 byte counts, never character counts.
//
// # Message Types
//
// Queries and responses (routed by PeekType):
//   - HashResponse (0): hashes a peer can serve
//   - DataResponse (1): raw post payloads, bounded by length accounting
//   - HashRequest (2): request content for a set of hashes
//   - CancelRequest (3): stop serving a prior reqid
//   - TimeRangeRequest (4): posts in a channel between two timestamps
//   - ChannelStateRequest (5): channel membership/topic plus updates
//   - ChannelListRequest (6): enumerate known channels
//
// Posts (routed by PostType):
//   - Text (0), Delete (1), Info (2), Topic (3), Join (4), Leave (5)
//
// # Signing
//
// A post is signed over everything after its signature region: link,
// postType and all type-specific fields. Create reserves the signature
// region, writes the rest of the message, signs in place and then
// self-verifies; parse re-verifies before any field reaches the caller.
// The link field chains each author's posts into an append-only
// sequence keyed by the BLAKE2b-256 hash of the previous post's bytes.
//
// # Usage
//
// Each message type has a free Create/Parse function pair. Create
// validates all arguments before writing anything and returns a
// finished cablegram; Parse returns a fully validated record or an
// error, never a partially decoded one. All calls are synchronous and
// share no state, so they may run concurrently without coordination.
package cable
