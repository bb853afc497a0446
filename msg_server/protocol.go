package msg_server

import (
	"encoding/binary"
	"fmt"
	"math"
)

// frame layout: 2 byte msg type, 8 byte msg id, payload

func WrapMsg(mType int, mID int64, msg []byte) []byte {
	if mType < 0 || mType > math.MaxUint16 || mID < 0 {
		panic(fmt.Sprintf("invalid msg type: %v, mID: %v", mType, mID))
	}
	head := make([]byte, 10)
	binary.BigEndian.PutUint16(head[:2], uint16(mType))
	binary.BigEndian.PutUint64(head[2:], uint64(mID))
	return append(head, msg...)
}

func UnWrapMsg(msg []byte) (int, int64, []byte) {
	if len(msg) < 10 {
		return -1, -1, []byte{}
	}
	return int(binary.BigEndian.Uint16(msg[:2])), int64(binary.BigEndian.Uint64(msg[2:10])), msg[10:]
}
