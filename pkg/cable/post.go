package cable

import (
	"github.com/cabal-club/cable/pkg/crypto"
	"github.com/cabal-club/cable/pkg/varint"
)

// The six signed post types. Every post body starts with the same fixed
// prefix:
//
//	publicKey | signature | link | postType
//
// The signature is detached Ed25519 over everything after the signature
// region, so flipping any byte of link, postType or the type-specific
// fields invalidates the post. The link field is the hash of the
// author's previous post; the codec writes and reads it verbatim and
// leaves chain validation to the caller.

// TextPost is a chat message in a channel.
type TextPost struct {
	PublicKey []byte
	Signature []byte
	Link      []byte
	Channel   string
	Timestamp int64
	Text      string
}

// DeletePost asks peers to discard the post with Hash.
type DeletePost struct {
	PublicKey []byte
	Signature []byte
	Link      []byte
	Timestamp int64
	Hash      []byte
}

// InfoPost publishes a key/value self-description, such as a display
// name.
type InfoPost struct {
	PublicKey []byte
	Signature []byte
	Link      []byte
	Timestamp int64
	Key       string
	Value     string
}

// TopicPost sets a channel's topic.
type TopicPost struct {
	PublicKey []byte
	Signature []byte
	Link      []byte
	Channel   string
	Timestamp int64
	Topic     string
}

// JoinPost announces channel membership.
type JoinPost struct {
	PublicKey []byte
	Signature []byte
	Link      []byte
	Channel   string
	Timestamp int64
}

// LeavePost announces departure from a channel.
type LeavePost struct {
	PublicKey []byte
	Signature []byte
	Link      []byte
	Channel   string
	Timestamp int64
}

// createPost validates the common arguments, writes the fixed prefix
// with a reserved signature region, appends the type-specific fields,
// signs in place and self-verifies before framing. A post that fails its
// own verification never leaves the process.
func createPost(publicKey, secretKey, link []byte, postType uint64, writeFields func(*writer)) ([]byte, error) {
	if err := assertFixedSize(publicKey, PublicKeySize, "publicKey"); err != nil {
		return nil, err
	}
	if err := assertFixedSize(secretKey, SecretKeySize, "secretKey"); err != nil {
		return nil, err
	}
	if err := assertFixedSize(link, HashSize, "link"); err != nil {
		return nil, err
	}

	w := newWriter()
	w.writeBytes(publicKey)
	w.reserve(SignatureSize)
	w.writeBytes(link)
	w.writeVarint(postType)
	writeFields(w)

	body := w.bytes()
	signaturePayload := body[PublicKeySize:]
	signedPayload := body[PublicKeySize+SignatureSize:]

	if err := crypto.Sign(signaturePayload, signedPayload, secretKey); err != nil {
		return nil, err
	}
	if !crypto.Verify(signaturePayload, signedPayload, publicKey) {
		return nil, ErrSignatureSelfCheck
	}

	return w.frame(), nil
}

// parsePost unwraps frame, reads the fixed prefix, verifies the
// signature over the received bytes and checks the post type tag. The
// reader it returns is positioned at the first type-specific field;
// nothing is handed back to the caller until the signature has checked
// out.
func parsePost(frame []byte, want uint64) (*reader, *postPrefix, error) {
	r, err := unwrapBody(frame)
	if err != nil {
		return nil, nil, err
	}

	publicKey, err := r.readBytes(PublicKeySize, "publicKey")
	if err != nil {
		return nil, nil, err
	}
	signature, err := r.readBytes(SignatureSize, "signature")
	if err != nil {
		return nil, nil, err
	}
	link, err := r.readBytes(HashSize, "link")
	if err != nil {
		return nil, nil, err
	}

	body := r.buf
	signaturePayload := body[PublicKeySize:]
	signedPayload := body[PublicKeySize+SignatureSize:]
	if !crypto.Verify(signaturePayload, signedPayload, publicKey) {
		return nil, nil, ErrInvalidSignature
	}

	postType, err := r.readVarint()
	if err != nil {
		return nil, nil, err
	}
	if postType != want {
		return nil, nil, typeErr(want, postType)
	}

	return r, &postPrefix{publicKey: publicKey, signature: signature, link: link}, nil
}

type postPrefix struct {
	publicKey []byte
	signature []byte
	link      []byte
}

// PostType returns the post type tag of a framed post without verifying
// it, so a store can route a post blob before committing to a full
// parse.
func PostType(frame []byte) (uint64, error) {
	_, n, err := varint.Decode(frame, 0)
	if err != nil {
		return 0, err
	}

	postType, _, err := varint.Decode(frame, n+PublicKeySize+SignatureSize+HashSize)
	if err != nil {
		return 0, err
	}

	return postType, nil
}

// CreateTextPost creates and signs a chat message in channel.
func CreateTextPost(publicKey, secretKey, link []byte, channel string, timestamp int64, text string) ([]byte, error) {
	if err := assertString(channel, "channel"); err != nil {
		return nil, err
	}
	if err := assertInteger(timestamp, "timestamp"); err != nil {
		return nil, err
	}
	if err := assertString(text, "text"); err != nil {
		return nil, err
	}

	return createPost(publicKey, secretKey, link, PostTypeText, func(w *writer) {
		w.writeString(channel)
		w.writeVarint(uint64(timestamp))
		w.writeString(text)
	})
}

// ParseTextPost decodes and verifies a TEXT_POST frame.
func ParseTextPost(frame []byte) (*TextPost, error) {
	r, prefix, err := parsePost(frame, PostTypeText)
	if err != nil {
		return nil, err
	}

	channel, err := r.readString("channel")
	if err != nil {
		return nil, err
	}
	timestamp, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	text, err := r.readString("text")
	if err != nil {
		return nil, err
	}

	return &TextPost{
		PublicKey: prefix.publicKey,
		Signature: prefix.signature,
		Link:      prefix.link,
		Channel:   channel,
		Timestamp: int64(timestamp),
		Text:      text,
	}, nil
}

// CreateDeletePost creates and signs a request to discard the post with
// hash.
func CreateDeletePost(publicKey, secretKey, link []byte, timestamp int64, hash []byte) ([]byte, error) {
	if err := assertInteger(timestamp, "timestamp"); err != nil {
		return nil, err
	}
	if err := assertFixedSize(hash, HashSize, "hash"); err != nil {
		return nil, err
	}

	return createPost(publicKey, secretKey, link, PostTypeDelete, func(w *writer) {
		w.writeVarint(uint64(timestamp))
		w.writeBytes(hash)
	})
}

// ParseDeletePost decodes and verifies a DELETE_POST frame.
func ParseDeletePost(frame []byte) (*DeletePost, error) {
	r, prefix, err := parsePost(frame, PostTypeDelete)
	if err != nil {
		return nil, err
	}

	timestamp, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	hash, err := r.readBytes(HashSize, "hash")
	if err != nil {
		return nil, err
	}

	return &DeletePost{
		PublicKey: prefix.publicKey,
		Signature: prefix.signature,
		Link:      prefix.link,
		Timestamp: int64(timestamp),
		Hash:      hash,
	}, nil
}

// CreateInfoPost creates and signs a key/value self-description post.
func CreateInfoPost(publicKey, secretKey, link []byte, timestamp int64, key, value string) ([]byte, error) {
	if err := assertInteger(timestamp, "timestamp"); err != nil {
		return nil, err
	}
	if err := assertString(key, "key"); err != nil {
		return nil, err
	}
	if err := assertString(value, "value"); err != nil {
		return nil, err
	}

	return createPost(publicKey, secretKey, link, PostTypeInfo, func(w *writer) {
		w.writeVarint(uint64(timestamp))
		w.writeString(key)
		w.writeString(value)
	})
}

// ParseInfoPost decodes and verifies an INFO_POST frame.
func ParseInfoPost(frame []byte) (*InfoPost, error) {
	r, prefix, err := parsePost(frame, PostTypeInfo)
	if err != nil {
		return nil, err
	}

	timestamp, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	key, err := r.readString("key")
	if err != nil {
		return nil, err
	}
	value, err := r.readString("value")
	if err != nil {
		return nil, err
	}

	return &InfoPost{
		PublicKey: prefix.publicKey,
		Signature: prefix.signature,
		Link:      prefix.link,
		Timestamp: int64(timestamp),
		Key:       key,
		Value:     value,
	}, nil
}

// CreateTopicPost creates and signs a channel topic change.
func CreateTopicPost(publicKey, secretKey, link []byte, channel string, timestamp int64, topic string) ([]byte, error) {
	if err := assertString(channel, "channel"); err != nil {
		return nil, err
	}
	if err := assertInteger(timestamp, "timestamp"); err != nil {
		return nil, err
	}
	if err := assertString(topic, "topic"); err != nil {
		return nil, err
	}

	return createPost(publicKey, secretKey, link, PostTypeTopic, func(w *writer) {
		w.writeString(channel)
		w.writeVarint(uint64(timestamp))
		w.writeString(topic)
	})
}

// ParseTopicPost decodes and verifies a TOPIC_POST frame.
func ParseTopicPost(frame []byte) (*TopicPost, error) {
	r, prefix, err := parsePost(frame, PostTypeTopic)
	if err != nil {
		return nil, err
	}

	channel, err := r.readString("channel")
	if err != nil {
		return nil, err
	}
	timestamp, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	topic, err := r.readString("topic")
	if err != nil {
		return nil, err
	}

	return &TopicPost{
		PublicKey: prefix.publicKey,
		Signature: prefix.signature,
		Link:      prefix.link,
		Channel:   channel,
		Timestamp: int64(timestamp),
		Topic:     topic,
	}, nil
}

// CreateJoinPost creates and signs a channel membership announcement.
func CreateJoinPost(publicKey, secretKey, link []byte, channel string, timestamp int64) ([]byte, error) {
	if err := assertString(channel, "channel"); err != nil {
		return nil, err
	}
	if err := assertInteger(timestamp, "timestamp"); err != nil {
		return nil, err
	}

	return createPost(publicKey, secretKey, link, PostTypeJoin, func(w *writer) {
		w.writeString(channel)
		w.writeVarint(uint64(timestamp))
	})
}

// ParseJoinPost decodes and verifies a JOIN_POST frame.
func ParseJoinPost(frame []byte) (*JoinPost, error) {
	r, prefix, err := parsePost(frame, PostTypeJoin)
	if err != nil {
		return nil, err
	}

	channel, err := r.readString("channel")
	if err != nil {
		return nil, err
	}
	timestamp, err := r.readVarint()
	if err != nil {
		return nil, err
	}

	return &JoinPost{
		PublicKey: prefix.publicKey,
		Signature: prefix.signature,
		Link:      prefix.link,
		Channel:   channel,
		Timestamp: int64(timestamp),
	}, nil
}

// CreateLeavePost creates and signs a channel departure announcement.
func CreateLeavePost(publicKey, secretKey, link []byte, channel string, timestamp int64) ([]byte, error) {
	if err := assertString(channel, "channel"); err != nil {
		return nil, err
	}
	if err := assertInteger(timestamp, "timestamp"); err != nil {
		return nil, err
	}

	return createPost(publicKey, secretKey, link, PostTypeLeave, func(w *writer) {
		w.writeString(channel)
		w.writeVarint(uint64(timestamp))
	})
}

// ParseLeavePost decodes and verifies a LEAVE_POST frame.
func ParseLeavePost(frame []byte) (*LeavePost, error) {
	r, prefix, err := parsePost(frame, PostTypeLeave)
	if err != nil {
		return nil, err
	}

	channel, err := r.readString("channel")
	if err != nil {
		return nil, err
	}
	timestamp, err := r.readVarint()
	if err != nil {
		return nil, err
	}

	return &LeavePost{
		PublicKey: prefix.publicKey,
		Signature: prefix.signature,
		Link:      prefix.link,
		Channel:   channel,
		Timestamp: int64(timestamp),
	}, nil
}
