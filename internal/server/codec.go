package server

import (
	"fmt"

	"platformer/pkg/protocol"
)

// DecodePacket 解析服务器收到的数据包
func DecodePacket(data []byte) (*ServerEvent, error) {
	pkt, err := protocol.UnmarshalPacket(data)
	if err != nil {
		return nil, fmt.Errorf("解析包失败: %w", err)
	}

	switch pkt.Type {
	case protocol.MessageHello:
		hello, err := protocol.ParseHello(pkt)
		if err != nil {
			return nil, err
		}
		return &ServerEvent{Kind: EventHello, Hello: hello}, nil

	case protocol.MessageInput:
		batch, err := protocol.ParseInput(pkt)
		if err != nil {
			return nil, err
		}
		return &ServerEvent{Kind: EventInput, Input: batch}, nil

	case protocol.MessageFullSnapshotRequest:
		req, err := protocol.ParseFullSnapshotRequest(pkt)
		if err != nil {
			return nil, err
		}
		return &ServerEvent{Kind: EventFullSnapshotRequest, FullRequest: req}, nil

	case protocol.MessagePing:
		ping, err := protocol.ParsePing(pkt)
		if err != nil {
			return nil, err
		}
		return &ServerEvent{Kind: EventPing, Ping: ping}, nil

	case protocol.MessagePong:
		pong, err := protocol.ParsePong(pkt)
		if err != nil {
			return nil, err
		}
		return &ServerEvent{Kind: EventPong, Pong: pong}, nil

	case protocol.MessageLeave:
		return &ServerEvent{Kind: EventLeave}, nil

	default:
		return &ServerEvent{Kind: EventUnknown}, nil
	}
}

