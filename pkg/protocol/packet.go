// Package protocol 客户端与服务器之间的消息格式
//
// 消息定义见 api/proto/platformer/v1，生成代码位于 api/gen/platformer/v1。
// 本包负责构造/解析外层 Packet，并在生成类型与 core 类型之间转换。
package protocol

//go:generate protoc -I ../../api/proto --go_out=../../api/gen --go_opt=paths=source_relative platformer/v1/messages.proto platformer/v1/snapshot.proto

import (
	"github.com/rotisserie/eris"
	"google.golang.org/protobuf/proto"

	platformerv1 "platformer/api/gen/platformer/v1"
)

// Packet 外层信封
type Packet = platformerv1.Packet

// MessageType 消息类型
type MessageType = platformerv1.MessageType

const (
	MessageUnknown             = platformerv1.MessageType_MESSAGE_TYPE_UNKNOWN
	MessageHello               = platformerv1.MessageType_MESSAGE_TYPE_HELLO
	MessageWelcome             = platformerv1.MessageType_MESSAGE_TYPE_WELCOME
	MessageReject              = platformerv1.MessageType_MESSAGE_TYPE_REJECT
	MessageInput               = platformerv1.MessageType_MESSAGE_TYPE_INPUT
	MessageSnapshot            = platformerv1.MessageType_MESSAGE_TYPE_SNAPSHOT
	MessageFullSnapshotRequest = platformerv1.MessageType_MESSAGE_TYPE_FULL_SNAPSHOT_REQUEST
	MessagePing                = platformerv1.MessageType_MESSAGE_TYPE_PING
	MessagePong                = platformerv1.MessageType_MESSAGE_TYPE_PONG
	MessageLeave               = platformerv1.MessageType_MESSAGE_TYPE_LEAVE
)

// MarshalPacket 序列化消息包
func MarshalPacket(pkt *Packet) ([]byte, error) {
	return proto.Marshal(pkt)
}

// Encode 构造并序列化，配合 New*Packet 使用：
//
//	data, err := protocol.Encode(protocol.NewPingPacket(now))
func Encode(pkt *Packet, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	return MarshalPacket(pkt)
}

// UnmarshalPacket 反序列化消息包
func UnmarshalPacket(data []byte) (*Packet, error) {
	pkt := &Packet{}
	if err := proto.Unmarshal(data, pkt); err != nil {
		return nil, eris.Wrap(err, "解析消息包失败")
	}
	if pkt.Type == MessageUnknown {
		return nil, eris.New("消息包缺少类型")
	}
	return pkt, nil
}

// newPacket 序列化 msg 作为 payload
func newPacket(typ MessageType, msg proto.Message) (*Packet, error) {
	payload, err := proto.Marshal(msg)
	if err != nil {
		return nil, eris.Wrapf(err, "序列化 %s 失败", typ)
	}
	return &Packet{Type: typ, Payload: payload}, nil
}

// parsePayload 校验类型并反序列化 payload 到 msg
func parsePayload(pkt *Packet, want MessageType, msg proto.Message) error {
	if pkt.Type != want {
		return eris.Errorf("消息类型错误: 期望 %s, 实际 %s", want, pkt.Type)
	}
	if err := proto.Unmarshal(pkt.Payload, msg); err != nil {
		return eris.Wrapf(err, "解析 %s 失败", want)
	}
	return nil
}
