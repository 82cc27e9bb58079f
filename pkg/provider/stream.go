package provider

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"serumgw/pkg/solana"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const HS_TIMEOUT_S = 5   // handshake timeout in seconds
const HB_INTERVAL_S = 55 // heartbeat interval in seconds

// BookStream subscribes to a market's order-book channel on the data node.
// Each event carries a whole snapshot; consumers rebuild their typed view
// wholesale per event, never patching across events.
type BookStream struct {
	wsURL   string
	address solana.PublicKey
	dialer  websocket.Dialer
	conn    *websocket.Conn

	lastPingpong time.Time

	// channels
	doneC          chan struct{}
	stopC          chan struct{}
	isDisconnected bool // temporary disconnection; the stream may auto-reconnect
	isClosed       bool // permanent closure; the stream will not reconnect

	// callbacks
	onConn  func(*BookStream)
	onClose func(*BookStream)

	mu      sync.Mutex
	writeMu sync.Mutex
	logger  *log.Entry
}

func NewBookStream(ctx context.Context, wsURL string, address solana.PublicKey, onConn func(*BookStream), onClose func(*BookStream)) (*BookStream, error) {
	// validate wsURL
	if _, err := url.Parse(wsURL); err != nil {
		return nil, err
	}
	return &BookStream{
		wsURL:   wsURL,
		address: address,
		dialer: websocket.Dialer{
			HandshakeTimeout:  time.Duration(HS_TIMEOUT_S) * time.Second,
			EnableCompression: true,
		},
		logger: log.WithFields(log.Fields{
			"url":    wsURL,
			"market": address.String(),
		}),
		onConn:  onConn,
		onClose: onClose,
	}, nil
}

// ConnectAndSubscribe dials, subscribes and starts the read loop. onSnapshot
// receives every full book snapshot published for the market.
func (sm *BookStream) ConnectAndSubscribe(onSnapshot func(*BookSnapshot)) (doneC chan struct{}, stopC chan struct{}, err error) {
	if err := sm.connect(); err != nil {
		return nil, nil, err
	}
	if sm.onConn != nil {
		sm.onConn(sm)
	}
	sm.lastPingpong = time.Now()

	sm.doneC = make(chan struct{})
	sm.stopC = make(chan struct{})

	go sm.subscribe(onSnapshot)
	return sm.doneC, sm.stopC, nil
}

func (sm *BookStream) connect() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	c, _, err := sm.dialer.Dial(sm.wsURL, nil)
	if err != nil {
		sm.logger.Errorf("fail to connect stream: %v", err)
		return err
	}
	sm.conn = c
	return nil
}

func (sm *BookStream) sendSubMsg() error {
	sm.writeMu.Lock()
	defer sm.writeMu.Unlock()

	subMsg := map[string]interface{}{
		"method":  "subscribe",
		"channel": "orderbook",
		"market":  sm.address.String(),
	}
	return sm.conn.WriteJSON(subMsg)
}

func (sm *BookStream) writeMessage(messageType int, data []byte) error {
	sm.writeMu.Lock()
	defer sm.writeMu.Unlock()
	return sm.conn.WriteMessage(messageType, data)
}

func (sm *BookStream) handleReconnect() {
	if !sm.IsDisconnected() {
		sm.forceDisconnect()
	}

	for {
		if sm.IsClosed() {
			return
		}
		select {
		case <-sm.stopC:
			sm.Close()
			return
		default:
			time.Sleep(1 * time.Second)
			if err := sm.connect(); err != nil {
				sm.logger.Errorf("fail to reconnect stream (retrying...): %v", err)
				continue
			}
			if err := sm.sendSubMsg(); err != nil {
				sm.logger.Errorf("fail to resubscribe stream: %v", err)
				sm.forceDisconnect()
				continue
			}
			sm.logger.Info("reconnect and resubscribe stream success")
			sm.mu.Lock()
			sm.isDisconnected = false
			sm.mu.Unlock()
			return
		}
	}
}

func (sm *BookStream) subscribe(onSnapshot func(*BookSnapshot)) {
	if err := sm.sendSubMsg(); err != nil {
		sm.logger.Errorf("fail to subscribe stream: %v", err)
		sm.Close()
	}
	sm.isDisconnected = false

	// keep stream connection alive
	sm.keepAlive(time.Duration(HB_INTERVAL_S) * time.Second)

	for {
		select {
		case <-sm.stopC:
			sm.Close()
			return
		default:
			if sm.IsClosed() {
				return
			}
			_, msg, err := sm.conn.ReadMessage()
			if err != nil {
				sm.logger.Errorf("fail to read stream message (trying to reconnect): %v", err)
				sm.handleReconnect()
				continue
			}

			snapshot, err := ParseBookEvent(msg, sm.address)
			if err != nil {
				sm.logger.Warnf("found unknown message format: %v: %v", err, string(msg))
				continue
			}
			sm.lastPingpong = time.Now()
			if snapshot == nil {
				// pong or subscription ack
				continue
			}
			onSnapshot(snapshot)
		}
	}
}

// ParseBookEvent decodes one stream message; nil snapshot for control frames
// (pong, subscription acks).
func ParseBookEvent(msg []byte, address solana.PublicKey) (*BookSnapshot, error) {
	var generic wsGenericResponse
	if err := json.Unmarshal(msg, &generic); err != nil {
		return nil, err
	}
	if generic.Channel != "orderbook" {
		return nil, nil
	}
	var res bookSnapshotResponse
	if err := json.Unmarshal(generic.Data, &res); err != nil {
		return nil, err
	}
	return parseBookSnapshot(res, address)
}

func (sm *BookStream) keepAlive(interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				// @dev: must check the state inside the ticker loop to handle reconnections
				if sm.IsClosed() {
					return
				}
				if sm.IsDisconnected() {
					continue
				}
				if time.Since(sm.lastPingpong) > time.Duration((HS_TIMEOUT_S+HB_INTERVAL_S)*time.Second) {
					sm.logger.Warn("KeepAlive timeout: force disconnecting")
					sm.forceDisconnect()
					continue
				}

				ping, _ := json.Marshal(map[string]string{"method": "ping"})
				if err := sm.writeMessage(websocket.TextMessage, ping); err != nil {
					sm.logger.Errorf("fail to write message during keepAlive: %v", err)
					return
				}
			case <-sm.stopC:
				sm.Close()
				return
			}
		}
	}()
}

// Close is the final call; the stream cannot be reopened afterward.
func (sm *BookStream) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	// @dev: must directly read sm.isClosed here to prevent mutex deadlock
	if sm.isClosed {
		return
	}
	if sm.onClose != nil {
		sm.onClose(sm)
	}
	if err := sm.conn.Close(); err != nil {
		sm.logger.Errorf("fail to close stream: %v", err)
	}
	sm.isDisconnected = true
	sm.isClosed = true

	select {
	case <-sm.doneC:
	default:
		// safely close the doneC channel
		close(sm.doneC)
	}
	sm.logger.Info("🔌 stream closed")
}

func (sm *BookStream) forceDisconnect() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	// @dev: must directly read sm.isDisconnected here to prevent mutex deadlock
	if sm.isDisconnected {
		return
	}

	sm.conn.Close()
	sm.isDisconnected = true
}

func (sm *BookStream) IsDisconnected() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.isDisconnected
}

func (sm *BookStream) IsClosed() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.isClosed
}
