package server

import (
	"encoding/gob"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/tweenseq/config"
	"github.com/zucenko/tweenseq/model"
	"github.com/zucenko/tweenseq/tween"
)

const (
	URI_SEQUENCES = "/sequences"
	URI_PLAY      = "/play/:name"
)

func NewPreviewServer(scene *config.Scene, cfg Config) *PreviewServer {
	def := DefaultConfig()
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = def.TickInterval
	}
	if cfg.Dt <= 0 {
		cfg.Dt = def.Dt
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	return &PreviewServer{
		Config:          cfg,
		Scene:           scene,
		Sessions:        make(map[string]*PlaybackSession),
		SessionRequests: make(chan SessionRequest),
		SessionsEnded:   make(chan string, 16),
		Upgrader:        &websocket.Upgrader{},
	}
}

func (s *PreviewServer) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.Scene.SequenceNames()); err != nil {
			log.Warnf("HandleList encode %v", err)
		}
	}
}

func (s *PreviewServer) HandlePlay() http.HandlerFunc {
	timeout := s.Config.RequestTimeout
	return func(w http.ResponseWriter, r *http.Request) {
		name := way.Param(r.Context(), "name")
		log.Printf("HandlePlay - connection received for %q", name)

		awaiting := make(chan SessionAwaiting, 1)
		select {
		case s.SessionRequests <- SessionRequest{Sequence: name, SessionAwaiting: awaiting}:
		case <-time.After(timeout):
			log.Warn("SessionRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var sa SessionAwaiting
		select {
		case sa = <-awaiting:
			switch sa.ResponseCode {
			case SEQUENCE_NOT_FOUND, SEQUENCE_INVALID:
				log.Warnf("HandlePlay %q refused, %s", name, sa.ResponseCode.Name())
				w.WriteHeader(sa.ResponseCode.ToHttp())
				return
			case SESSION_READY:
				log.Printf("HandlePlay ok, have PlaybackSession %s", sa.Session.Id)
			default:
				log.Errorf("sa.ResponseCode not expected:%v", sa.ResponseCode)
				w.WriteHeader(HTTP_SERVER_ERR)
				return
			}
		case <-time.After(timeout):
			log.Warn("HandlePlay SessionAwaiting <- TIMEOUTED")
			go abortLate(awaiting)
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the request
			log.Printf("HandlePlay websocket upgrade err %v", err)
			sa.Session.abort()
			return
		}
		defer con.Close()

		finished := make(chan struct{})
		select {
		case sa.Session.ViewerConnectRequests <- ViewerConnectRequest{Con: con, Finished: finished}:
		case <-time.After(timeout):
			log.Warn("HandlePlay ViewerConnectRequests TIMEOUTED")
			sa.Session.abort()
			return
		}

		log.Info("HandlePlay waiting for the viewer to leave")
		<-finished
	}
}

// abortLate ends a session that arrives after its handler gave up on it.
// Loop always answers, so this never blocks for long.
func abortLate(awaiting <-chan SessionAwaiting) {
	sa := <-awaiting
	if sa.Session != nil {
		log.Warnf("session %s arrived after its viewer left, aborting", sa.Session.Id)
		sa.Session.abort()
	}
}

// Loop hands out sessions and forgets them once they end.
func (s *PreviewServer) Loop() {
	log.Printf("PreviewServer.Loop starting")
	for {
		select {
		case req := <-s.SessionRequests:
			ps, code := s.NewSession(req.Sequence)
			if ps != nil {
				s.Sessions[ps.Id] = ps
				go ps.Loop(s.Config, s.SessionsEnded)
			}
			req.SessionAwaiting <- SessionAwaiting{ResponseCode: code, Session: ps}
		case id := <-s.SessionsEnded:
			log.Printf("PreviewServer.Loop session %s ended", id)
			delete(s.Sessions, id)
		}
	}
}

// NewSession builds a session for the named sequence without starting its loop.
func (s *PreviewServer) NewSession(name string) (*PlaybackSession, ResponseCode) {
	sc, err := s.Scene.FindSequence(name)
	if err != nil {
		log.Warnf("NewSession %v", err)
		return nil, SEQUENCE_NOT_FOUND
	}
	id := uuid.New().String()
	ps := &PlaybackSession{
		Id:                    id,
		State:                 SS_NEW,
		Sequence:              name,
		Engine:                tween.NewEngine(),
		ViewerConnectRequests: make(chan ViewerConnectRequest),
		Commands:              make(chan model.ClientMessage, 10),
		Errors:                make(chan struct{}, 2),
		log:                   log.WithFields(log.Fields{"component": "session", "session": id, "sequence": name}),
	}
	built, err := sc.Build(ps.stepEvent)
	if err != nil {
		log.Warnf("NewSession %q %v", name, err)
		return nil, SEQUENCE_INVALID
	}
	seq, err := tween.NewSequencer(ps.Engine, built.Sequence, built.Start, ps.record,
		tween.WithEasing(built.Easing),
		tween.WithLogger(ps.log))
	if err != nil {
		log.Warnf("NewSession %q %v", name, err)
		return nil, SEQUENCE_INVALID
	}
	ps.Sequencer = seq
	return ps, SESSION_READY
}

func (ps *PlaybackSession) Loop(cfg Config, ended chan<- string) {
	ps.log.Info("PlaybackSession.Loop start")
	ticker := time.NewTicker(cfg.TickInterval)
	defer func() {
		ticker.Stop()
		ps.Engine.CancelAll()
		ended <- ps.Id
	}()
	for {
		select {
		case vcr := <-ps.ViewerConnectRequests:
			ps.addViewer(vcr.Con, vcr.Finished)
			ps.Viewer.MessagesToSend <- ps.MakeSetupMessage()
		case cm := <-ps.Commands:
			ps.Handle(cm)
		case <-ps.Errors:
			ps.log.Info("closing session")
			ps.setState(SS_OVER)
			if ps.Viewer != nil {
				ps.Viewer.finish()
			}
			return
		case <-ticker.C:
			if ps.Viewer == nil {
				continue
			}
			msg := ps.Tick(cfg.Dt)
			if msg == nil {
				continue
			}
			select {
			case ps.Viewer.MessagesToSend <- *msg:
			default:
				ps.log.Warn("Dropping frame, viewer MessagesToSend FULL")
			}
		}
	}
}

// Handle applies a viewer command.
func (ps *PlaybackSession) Handle(cm model.ClientMessage) {
	switch cm.Command {
	case model.CMD_PLAY:
		pb := ps.Sequencer.Play(cm.Index, ps.settled)
		if pb.Done() {
			ps.log.Warnf("Play %d ignored", cm.Index)
			return
		}
		ps.playback = pb
		ps.setState(SS_PLAY)
	case model.CMD_STOP:
		ps.Sequencer.Stop()
		ps.setState(SS_IDLE)
	default:
		ps.log.Warnf("unknown command %d", cm.Command)
	}
}

// Tick advances the engine by dt and returns what happened since the last tick, nil if nothing.
func (ps *PlaybackSession) Tick(dt float32) *model.ServerMessage {
	ps.Engine.Update(dt)
	if ps.State == SS_PLAY && !ps.Sequencer.Playing() {
		ps.setState(SS_IDLE)
	}
	if ps.lastFrame != nil {
		ps.pending.Frames = append(ps.pending.Frames, *ps.lastFrame)
		ps.lastFrame = nil
	}
	if len(ps.pending.Frames) == 0 && len(ps.pending.Events) == 0 {
		return nil
	}
	msg := ps.pending
	ps.pending = model.ServerMessage{}
	return &msg
}

func (ps *PlaybackSession) setState(state SessionState) {
	if state != ps.State {
		ps.log.Debugf("%s -> %s", ps.State.Name(), state.Name())
	}
	ps.State = state
}

func (ps *PlaybackSession) MakeSetupMessage() model.ServerMessage {
	seq := ps.Sequencer.Sequence()
	return model.ServerMessage{
		Setup: []model.Setup{{
			SessionId: ps.Id,
			Sequence:  ps.Sequence,
			Steps:     len(seq.Steps),
			Loop:      seq.Loop,
			Start:     ps.Sequencer.Start(),
		}},
		Frames: []model.Frame{{Time: ps.Engine.Now(), Step: ps.step(), Value: ps.Sequencer.Value()}},
	}
}

func (ps *PlaybackSession) record(v model.Value) {
	ps.lastFrame = &model.Frame{Time: ps.Engine.Now(), Step: ps.step(), Value: v}
}

func (ps *PlaybackSession) step() int {
	if ps.playback == nil || ps.playback.Done() {
		return -1
	}
	return ps.playback.Index()
}

func (ps *PlaybackSession) stepEvent(name string) func() {
	return func() {
		ps.pending.Events = append(ps.pending.Events, model.StepEvent{
			Time:  ps.Engine.Now(),
			Step:  ps.step(),
			Event: name,
		})
	}
}

func (ps *PlaybackSession) settled(index int) {
	ps.pending.Events = append(ps.pending.Events, model.StepEvent{
		Time:    ps.Engine.Now(),
		Step:    index,
		Settled: true,
	})
}

// abort ends a session whose viewer never arrived.
func (ps *PlaybackSession) abort() {
	select {
	case ps.Errors <- struct{}{}:
	default:
	}
}

func (ps *PlaybackSession) addViewer(conn *websocket.Conn, finished chan struct{}) {
	ps.log.Printf("PlaybackSession.addViewer")
	vs := &ViewerSession{
		State:          VS_PLAY,
		Session:        ps,
		Conn:           conn,
		Finished:       finished,
		MessagesToSend: make(chan model.ServerMessage, 64),
		done:           make(chan struct{}),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			vs.DebugLastPing = time.Now()
			vs.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	ps.Viewer = vs
	ps.setState(SS_IDLE)
	go vs.LoopChannelRead()
	go vs.LoopChannelWrite()
}

func (vs *ViewerSession) finish() {
	vs.State = VS_OVER
	vs.once.Do(func() {
		close(vs.done)
		close(vs.Finished)
	})
}

func (vs *ViewerSession) LoopChannelRead() {
	log.Printf("LoopChannelRead STARTED")
	defer vs.Session.abort()
	for {
		messageType, r, err := vs.Conn.NextReader()
		if err != nil {
			log.Printf("LoopChannelRead err reading message from Conn %v", err)
			return
		}
		log.Debugf("LoopChannelRead received message type: %d", messageType)
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			log.Warnf("LoopChannelRead cant decode %v", err)
			return
		}
		vs.DebugLastMessage = time.Now()
		vs.DebugInMessages++

		select {
		case vs.Session.Commands <- cm:
		default:
			log.Warnf("Dropping command read from socket, PlaybackSession.Commands FULL")
		}
	}
}

// this function only consumes, a full buffer never blocks the session
func (vs *ViewerSession) LoopChannelWrite() {
	log.Printf("ViewerSession.LoopChannelWrite STARTED")
	for {
		select {
		case <-vs.done:
			log.Printf("LoopChannelWrite ENDED")
			return
		case mes := <-vs.MessagesToSend:
			w, err := vs.Conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				log.Warnf("ViewerSession.LoopChannelWrite cant get writer %v", err)
				vs.Session.abort()
				return
			}
			if err := gob.NewEncoder(w).Encode(mes); err != nil {
				log.Warnf("ViewerSession.LoopChannelWrite cant encode %v", err)
				vs.Session.abort()
				return
			}
			if err := w.Close(); err != nil {
				log.Warnf("ViewerSession.LoopChannelWrite cant flush %v", err)
				vs.Session.abort()
				return
			}
			vs.DebugOutMessages++
		}
	}
}
