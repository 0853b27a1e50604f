package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/tweenseq/config"
	"github.com/zucenko/tweenseq/model"
	"github.com/zucenko/tweenseq/tween"
)

type Config struct {
	// TickInterval is the wall time between two engine updates of a session.
	TickInterval time.Duration
	// Dt is the animation time one tick advances, in seconds.
	Dt float32
	// RequestTimeout bounds every hand-off between the handler and the loops.
	RequestTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		TickInterval:   20 * time.Millisecond,
		Dt:             0.02,
		RequestTimeout: 200 * time.Millisecond,
	}
}

type PreviewServer struct {
	Config          Config
	Scene           *config.Scene
	Sessions        map[string]*PlaybackSession
	SessionRequests chan SessionRequest
	SessionsEnded   chan string
	Upgrader        *websocket.Upgrader
}

type SessionState int

const (
	SS_NEW SessionState = iota
	SS_PLAY
	SS_IDLE
	SS_ERR
	SS_OVER
)

// PlaybackSession owns one engine and one sequencer. Both are only touched from Loop.
type PlaybackSession struct {
	Id        string
	State     SessionState
	Sequence  string
	Engine    *tween.Engine
	Sequencer *tween.Sequencer
	Viewer    *ViewerSession

	ViewerConnectRequests chan ViewerConnectRequest
	Commands              chan model.ClientMessage
	Errors                chan struct{}

	playback  *tween.Playback
	pending   model.ServerMessage
	lastFrame *model.Frame
	log       *log.Entry
}

type ViewerState int

const (
	VS_NEW ViewerState = iota + 1
	VS_PLAY
	VS_OVER
	VS_ERR
)

type ViewerSession struct {
	State    ViewerState
	Session  *PlaybackSession
	Conn     *websocket.Conn
	Finished chan struct{}

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int

	done chan struct{}
	once sync.Once
}
