package live

import (
	"encoding/json"

	"github.com/vango-dev/vroute/internal/errors"
)

// FrameType discriminates frames.
type FrameType string

const (
	FrameHello   FrameType = "hello"
	FrameEvent   FrameType = "event"
	FramePop     FrameType = "pop"
	FramePush    FrameType = "push"
	FrameReplace FrameType = "replace"
	FrameHTML    FrameType = "html"
	FrameError   FrameType = "error"
)

// Frame is one WebSocket message in either direction.
type Frame struct {
	Type  FrameType `json:"t"`
	URL   string    `json:"url,omitempty"`
	Token string    `json:"token,omitempty"`
	HID   string    `json:"hid,omitempty"`
	Name  string    `json:"name,omitempty"`
	HTML  string    `json:"html,omitempty"`
	Error string    `json:"error,omitempty"`
}

// DecodeFrame parses and validates a client frame.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, errors.New(errors.CodeProtocol).Wrap(err)
	}

	switch f.Type {
	case FrameHello, FramePop:
		if f.URL == "" {
			return Frame{}, errors.New(errors.CodeProtocol).WithDetailf("%s frame without url", f.Type)
		}
	case FrameEvent:
		if f.HID == "" || f.Name == "" {
			return Frame{}, errors.New(errors.CodeProtocol).WithDetail("event frame without hid or name")
		}
	default:
		return Frame{}, errors.New(errors.CodeProtocol).WithDetailf("unexpected frame type %q", f.Type)
	}
	return f, nil
}

func errUnexpectedFrame(t FrameType) error {
	return errors.New(errors.CodeProtocol).WithDetailf("expected hello frame, got %q", t)
}

func jsonFrame(f Frame) ([]byte, error) {
	return json.Marshal(f)
}
