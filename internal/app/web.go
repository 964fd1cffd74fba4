package app

import (
	"encoding/json"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/alfa-eta/dashboard/internal/config"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // pit network only
	},
}

// RunWeb subscribes to the vehicle's telemetry topic and serves the latest
// snapshot over a JSON API and a websocket push channel for the pit display.
func RunWeb(cfg config.Config, logger *zap.Logger) error {
	var (
		mu       sync.RWMutex
		last     []byte
		haveSnap bool

		connMu sync.Mutex
		conns  = map[*websocket.Conn]bool{}
	)

	// 1) Connect to the MQTT broker.
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTT.Broker).
		SetClientID(cfg.MQTT.ClientID + "-web")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	logger.Info("connected to MQTT broker", zap.String("broker", cfg.MQTT.Broker))

	// 2) Cache each snapshot and fan it out to websocket clients.
	token := client.Subscribe(cfg.MQTT.Topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var snap Snapshot
		if err := json.Unmarshal(msg.Payload(), &snap); err != nil {
			logger.Warn("telemetry payload unmarshal error", zap.Error(err))
			return
		}

		payload := append([]byte(nil), msg.Payload()...)
		mu.Lock()
		last = payload
		haveSnap = true
		mu.Unlock()

		connMu.Lock()
		for c := range conns {
			if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.Close()
				delete(conns, c)
			}
		}
		connMu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	logger.Info("subscribed to telemetry topic", zap.String("topic", cfg.MQTT.Topic))

	// 3) JSON API endpoint: latest snapshot.
	http.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveSnap {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(last)
	})

	// 4) Websocket push for the live pit view.
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		connMu.Lock()
		conns[c] = true
		connMu.Unlock()
	})

	// 5) Static files from ./web as the root.
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	logger.Info("web server listening", zap.String("addr", cfg.Web.Addr))
	return http.ListenAndServe(cfg.Web.Addr, nil)
}
