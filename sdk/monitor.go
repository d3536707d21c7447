package sdk

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Quality classifies the measured connection latency
type Quality string

const (
	QualityGood    Quality = "good"
	QualityFair    Quality = "fair"
	QualityPoor    Quality = "poor"
	QualityOffline Quality = "offline"
)

const rttWindow = 10

// ConnectionMonitor measures round-trip time with application-level pings
// and classifies the connection quality from a moving average. It rides on
// the protocol's ping/pong messages, not the WebSocket control frames, so
// the measurement covers the full message path the game traffic takes.
type ConnectionMonitor struct {
	client   *WSClient
	clock    quartz.Clock
	interval time.Duration
	logger   *log.Logger

	mu       sync.Mutex
	samples  []time.Duration
	quality  Quality
	onChange func(Quality)
	stop     chan struct{}
	stopOnce sync.Once
}

// NewConnectionMonitor creates a monitor that pings at the given interval
func NewConnectionMonitor(client *WSClient, clock quartz.Clock, interval time.Duration, logger *log.Logger) *ConnectionMonitor {
	return &ConnectionMonitor{
		client:   client,
		clock:    clock,
		interval: interval,
		logger:   logger.WithPrefix("monitor"),
		quality:  QualityOffline,
		stop:     make(chan struct{}),
	}
}

// OnQualityChange registers a callback fired when the classification moves
func (m *ConnectionMonitor) OnQualityChange(fn func(Quality)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Start subscribes to pong events and begins the ping loop
func (m *ConnectionMonitor) Start() {
	m.client.AddEventHandler(MessageTypePong, m.handlePong)

	go func() {
		ticker := m.clock.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !m.client.IsConnected() {
					m.setQuality(QualityOffline)
					continue
				}
				if err := m.client.Ping(); err != nil {
					m.setQuality(QualityOffline)
				}
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop ends the ping loop
func (m *ConnectionMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// RTT returns the moving-average round-trip time; zero when no samples yet
func (m *ConnectionMonitor) RTT() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.average()
}

// Quality returns the current classification
func (m *ConnectionMonitor) Quality() Quality {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quality
}

func (m *ConnectionMonitor) handlePong(msg *Message) {
	var data PongData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		return
	}

	rtt := time.Duration(time.Now().UnixMilli()-data.Timestamp) * time.Millisecond
	if rtt < 0 {
		return
	}
	m.Record(rtt)
}

// Record adds a latency sample and reclassifies
func (m *ConnectionMonitor) Record(rtt time.Duration) {
	m.mu.Lock()
	m.samples = append(m.samples, rtt)
	if len(m.samples) > rttWindow {
		m.samples = m.samples[len(m.samples)-rttWindow:]
	}
	avg := m.average()
	m.mu.Unlock()

	m.setQuality(Classify(avg))
}

func (m *ConnectionMonitor) average() time.Duration {
	if len(m.samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, s := range m.samples {
		total += s
	}
	return total / time.Duration(len(m.samples))
}

func (m *ConnectionMonitor) setQuality(q Quality) {
	m.mu.Lock()
	changed := m.quality != q
	m.quality = q
	fn := m.onChange
	m.mu.Unlock()

	if changed {
		m.logger.Debug("connection quality changed", "quality", q)
		if fn != nil {
			fn(q)
		}
	}
}

// Classify maps an average round-trip time to a quality bucket
func Classify(rtt time.Duration) Quality {
	switch {
	case rtt <= 0:
		return QualityOffline
	case rtt < 100*time.Millisecond:
		return QualityGood
	case rtt < 300*time.Millisecond:
		return QualityFair
	default:
		return QualityPoor
	}
}
