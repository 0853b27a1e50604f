package server

import (
	"fmt"

	"github.com/gorilla/websocket"
)

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_NOT_FOUND = 404
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

// ResponseCode is Loop's answer to a request for a playback session.
type ResponseCode int

const (
	// SESSION_READY means the sequence was built and its session is ticking, waiting for a viewer.
	SESSION_READY ResponseCode = iota
	// SEQUENCE_NOT_FOUND means the scene has no sequence of that name.
	SEQUENCE_NOT_FOUND
	// SEQUENCE_INVALID means the sequence is listed but its steps do not build.
	SEQUENCE_INVALID
)

// ToHttp is the status the play handler answers with when no websocket is opened.
func (h ResponseCode) ToHttp() int {
	switch h {
	case SESSION_READY:
		return HTTP_SUCCESS
	case SEQUENCE_NOT_FOUND:
		return HTTP_NOT_FOUND
	case SEQUENCE_INVALID:
		return HTTP_BAD_REQUEST
	default:
		panic(h)
	}
}

func (h ResponseCode) Name() string {
	switch h {
	case SESSION_READY:
		return "SESSION_READY"
	case SEQUENCE_NOT_FOUND:
		return "SEQUENCE_NOT_FOUND"
	case SEQUENCE_INVALID:
		return "SEQUENCE_INVALID"
	default:
		return fmt.Sprintf("n/a:%d", h)
	}
}

// Name is used in the session log; SS_PLAY lasts while the sequencer has a live playback.
func (ss SessionState) Name() string {
	switch ss {
	case SS_NEW:
		return "SS_NEW"
	case SS_PLAY:
		return "SS_PLAY"
	case SS_IDLE:
		return "SS_IDLE"
	case SS_ERR:
		return "SS_ERR"
	case SS_OVER:
		return "SS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", ss)
	}
}

func (vs ViewerState) Name() string {
	switch vs {
	case VS_NEW:
		return "NEW"
	case VS_PLAY:
		return "PLAY"
	case VS_OVER:
		return "OVER"
	case VS_ERR:
		return "ERR"
	default:
		return "N/A"
	}
}

// SessionAwaiting carries the session back to the play handler; Session is nil unless SESSION_READY.
type SessionAwaiting struct {
	ResponseCode ResponseCode
	Session      *PlaybackSession
}

// SessionRequest asks Loop for a fresh session playing the named sequence.
type SessionRequest struct {
	Sequence        string
	SessionAwaiting chan SessionAwaiting
}

// ViewerConnectRequest attaches the upgraded socket to its session.
// The session closes Finished when the viewer is done, which releases the handler.
type ViewerConnectRequest struct {
	Con      *websocket.Conn
	Finished chan struct{}
}
