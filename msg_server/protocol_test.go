package msg_server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapUnWrapMsg(t *testing.T) {
	payload := []byte(`{"info":"ok"}`)
	frame := WrapMsg(0x22, 123456789, payload)
	assert.Len(t, frame, 10+len(payload))

	mType, mID, msg := UnWrapMsg(frame)
	assert.Equal(t, 0x22, mType)
	assert.Equal(t, int64(123456789), mID)
	assert.Equal(t, payload, msg)
}

func TestWrapMsg_EmptyPayload(t *testing.T) {
	frame := WrapMsg(0x10, 0, nil)
	mType, mID, msg := UnWrapMsg(frame)
	assert.Equal(t, 0x10, mType)
	assert.Equal(t, int64(0), mID)
	assert.Len(t, msg, 0)
}

func TestUnWrapMsg_Truncated(t *testing.T) {
	for _, frame := range [][]byte{nil, {}, {0x00, 0x22}, make([]byte, 9)} {
		mType, mID, msg := UnWrapMsg(frame)
		assert.Equal(t, -1, mType)
		assert.Equal(t, int64(-1), mID)
		assert.Len(t, msg, 0)
	}
}

func TestWrapMsg_InvalidPanics(t *testing.T) {
	assert.Panics(t, func() { WrapMsg(-1, 1, nil) })
	assert.Panics(t, func() { WrapMsg(0x10000, 1, nil) })
	assert.Panics(t, func() { WrapMsg(0x10, -1, nil) })
}
