package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/adwski/webrtc-roulette/backend/model"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	defaultShutdownDeadline = 10 * time.Second

	defaultWebsocketReadBufferSize     = 10000
	defaultWebsocketWriteBufferSize    = 10000
	defaultWebSocketMaxMessageSize     = 64 * 1024
	defaultWebSocketHandshakeTimeout   = 3 * time.Second
	defaultWebSocketCloseWriteDeadline = 2 * time.Second
	defaultWebSocketWriteDeadline      = 5 * time.Second

	// defaultPongWait - defaultPingInterval == is how long we give client to respond
	defaultPingInterval = 5 * time.Second
	defaultPongWait     = 7 * time.Second

	defaultSendBuffer    = 64
	defaultMaxNameLength = 64
	defaultName          = "anonymous"
)

var (
	ErrUnexpected = errors.New("unexpected server error")
)

type (
	SignalingService interface {
		OnConnect(id, name string, out model.Outbound) error
		OnDisconnect(id string)
		OnOffer(roomID, senderID string, sdp json.RawMessage)
		OnAnswer(roomID, senderID string, sdp json.RawMessage)
		OnCandidate(roomID, senderID string, candidate json.RawMessage, label model.CandidateLabel)
	}

	Config struct {
		Logger           *zerolog.Logger
		SignalingService SignalingService
		ListenAddr       string
		SendBuffer       int
		MaxNameLength    int
	}

	Server struct {
		svc      SignalingService
		ws       *websocket.Upgrader
		validate *validator.Validate
		*http.Server

		sendBuffer int
		nameRule   string

		logger zerolog.Logger
	}
)

func NewServer(cfg Config) *Server {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = defaultSendBuffer
	}
	if cfg.MaxNameLength <= 0 {
		cfg.MaxNameLength = defaultMaxNameLength
	}
	srv := &Server{
		logger: cfg.Logger.With().Str("component", "websocket-server").Logger(),
		svc:    cfg.SignalingService,
		ws: &websocket.Upgrader{
			HandshakeTimeout: defaultWebSocketHandshakeTimeout,
			ReadBufferSize:   defaultWebsocketReadBufferSize,
			WriteBufferSize:  defaultWebsocketWriteBufferSize,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
		validate:   newValidator(),
		sendBuffer: cfg.SendBuffer,
		nameRule:   fmt.Sprintf("max=%d,%s", cfg.MaxNameLength, tagDisplayName),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /signal", srv.signal)

	srv.Server = &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}
	return srv
}

func (srv *Server) Run(ctx context.Context, wg *sync.WaitGroup, errc chan<- error) {
	defer func() {
		srv.logger.Debug().Msg("server stopped")
		wg.Done()
	}()

	errSrv := make(chan error)
	go func() {
		errSrv <- srv.ListenAndServe()
	}()

	srv.logger.Info().Str("addr", srv.Addr).Msg("server started")

	select {
	case err := <-errSrv:
		if !errors.Is(err, http.ErrServerClosed) {
			errc <- errors.Join(ErrUnexpected, err)
		}
	case <-ctx.Done():
		shCtx, shCancel := context.WithTimeout(context.Background(), defaultShutdownDeadline)
		defer shCancel()
		if err := srv.Shutdown(shCtx); err != nil {
			srv.logger.Error().Err(err).Msg("server shutdown failed")
		}
	}
}

func (srv *Server) signal(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = defaultName
	}
	if err := srv.validate.Var(name, srv.nameRule); err != nil {
		srv.logger.Debug().Err(err).Msg("invalid display name")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	conn, err := srv.ws.Upgrade(w, r, nil)
	if err != nil {
		srv.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := uuid.NewString()
	logger := srv.logger.With().
		Str("participantID", id).
		Str("name", name).
		Logger()

	ctx, cancel := context.WithCancel(context.Background()) // long-living connection context
	handle := newConnHandle(ctx, srv.sendBuffer, &logger)

	// the sender must be draining before the service pushes lobby/send-offer
	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func() {
		webSocketSender(ctx, wg, conn, handle.tx, &logger)
		cancel()
	}()

	if err = srv.svc.OnConnect(id, name, handle); err != nil {
		logger.Error().Err(err).Msg("failed to register participant")
		cancel()
		wg.Wait()
		webSocketCloser(conn, &logger)
		return
	}
	logger.Debug().Msg("signaling session created")

	go srv.handleWSConn(ctx, cancel, wg, conn, id, &logger)
}

func (srv *Server) handleWSConn(
	ctx context.Context,
	cancel context.CancelFunc,
	wg *sync.WaitGroup,
	conn *websocket.Conn,
	id string,
	logger *zerolog.Logger,
) {
	wg.Add(1)
	go func() {
		srv.webSocketReceiver(ctx, wg, conn, id, logger)
		cancel()
	}()
	go func() {
		// unblock a pending read once the sender is gone
		<-ctx.Done()
		_ = conn.SetReadDeadline(time.Now())
	}()

	wg.Wait()
	srv.svc.OnDisconnect(id)
	webSocketCloser(conn, logger)
	logger.Debug().Msg("signaling session ended")
}

// dispatch hands a decoded client message to the service.
func (srv *Server) dispatch(id string, msg *model.Message, logger *zerolog.Logger) {
	if err := srv.validate.Struct(msg); err != nil {
		logger.Debug().Err(err).Str("type", msg.Type).Msg("invalid message dropped")
		return
	}
	switch msg.Type {
	case model.MessageTypeOffer:
		srv.svc.OnOffer(msg.RoomID, id, msg.SDP)
	case model.MessageTypeAnswer:
		srv.svc.OnAnswer(msg.RoomID, id, msg.SDP)
	case model.MessageTypeCandidate:
		srv.svc.OnCandidate(msg.RoomID, id, msg.Candidate, msg.Label)
	default:
		logger.Debug().Str("type", msg.Type).Msg("unknown message type")
	}
}

func webSocketSender(
	ctx context.Context,
	wg *sync.WaitGroup,
	conn *websocket.Conn,
	tx <-chan model.Message,
	logger *zerolog.Logger,
) {
	pingTicker := time.NewTicker(defaultPingInterval)
	defer func() {
		pingTicker.Stop()
		wg.Done()
	}()
SendLoop:
	for {
		select {
		case <-ctx.Done():
			break SendLoop
		case <-pingTicker.C:
			wsErr := conn.SetWriteDeadline(time.Now().Add(defaultWebSocketWriteDeadline))
			if wsErr != nil {
				logger.Error().Err(wsErr).Msg("failed to set websocket write deadline")
				break SendLoop
			}
			wsErr = conn.WriteMessage(websocket.PingMessage, []byte{})
			if wsErr != nil {
				logger.Error().Err(wsErr).Msg("failed to send ping")
			}
			logger.Trace().Msg("ping sent")

		case msg := <-tx:
			b, wsErr := json.Marshal(&msg)
			if wsErr != nil {
				logger.Error().Err(wsErr).Msg("failed to marshall outgoing message")
				break SendLoop
			}

			wsErr = conn.SetWriteDeadline(time.Now().Add(defaultWebSocketWriteDeadline))
			if wsErr != nil {
				logger.Error().Err(wsErr).Msg("failed to set websocket write deadline")
				break SendLoop
			}
			if wsErr = conn.WriteMessage(websocket.TextMessage, b); wsErr != nil {
				logger.Error().Err(wsErr).Msg("failed to write outgoing message")
				break SendLoop
			}
			logger.Trace().Str("type", msg.Type).Msg("message sent")
		}
	}
}

func (srv *Server) webSocketReceiver(
	ctx context.Context,
	wg *sync.WaitGroup,
	conn *websocket.Conn,
	id string,
	logger *zerolog.Logger,
) {
	defer wg.Done()

	conn.SetReadLimit(defaultWebSocketMaxMessageSize)
	readDeadLineFunc := func(deadline time.Duration) error {
		return conn.SetReadDeadline(time.Now().Add(deadline))
	}
	conn.SetPongHandler(func(string) error {
		logger.Trace().Msg("got pong")
		return readDeadLineFunc(defaultPongWait)
	})
	err := readDeadLineFunc(defaultPongWait)
	if err != nil {
		logger.Error().Err(err).Msg("failed to set websocket read deadline")
		return
	}

RecvLoop:
	for {
		select {
		case <-ctx.Done():
			break RecvLoop
		default:
			_, b, wsErr := conn.ReadMessage()
			if wsErr != nil {
				if websocket.IsCloseError(wsErr,
					websocket.CloseNormalClosure,
					websocket.CloseGoingAway) {
					logger.Debug().Err(wsErr).Msg("connection closed")
				} else {
					logger.Warn().Err(wsErr).Msg("unexpected error during receive")
				}
				break RecvLoop
			}
			// any frame proves the peer is alive
			if wsErr = readDeadLineFunc(defaultPongWait); wsErr != nil {
				logger.Error().Err(wsErr).Msg("failed to set websocket read deadline")
				break RecvLoop
			}

			var msg model.Message
			if wsErr = json.Unmarshal(b, &msg); wsErr != nil {
				logger.Debug().Err(wsErr).Msg("failed to unmarshall incoming message")
				continue
			}
			srv.dispatch(id, &msg, logger)
		}
	}
}

func webSocketCloser(conn *websocket.Conn, logger *zerolog.Logger) {
	wsErr := conn.SetWriteDeadline(time.Now().Add(defaultWebSocketCloseWriteDeadline))
	if wsErr != nil {
		logger.Error().Err(wsErr).Msg("failed to set websocket write deadline during closing")
	} else {
		wsErr = conn.WriteMessage(websocket.CloseMessage, []byte{})
		if wsErr != nil && !errors.Is(wsErr, websocket.ErrCloseSent) {
			logger.Debug().Err(wsErr).Msg("failed to send close message")
		}
	}
	wsErr = conn.Close()
	if wsErr != nil {
		logger.Debug().Err(wsErr).Msg("failed to close websocket connection")
	}
}
