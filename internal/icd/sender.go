// Package icd transmits position-update batches to the common operating
// picture consumer as JSON over UDP at a fixed rate. It holds only the
// most recent batch; the simulation core never touches a socket itself.
package icd

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/labstack/gommon/log"

	"tactical-sim/pkg/types"
)

// DefaultTarget is the ICD consumer endpoint.
const DefaultTarget = "127.0.0.1:5001"

// Sender keeps the latest position batch and sends it at its configured
// cadence (50 Hz by default, matching the tick engine).
type Sender struct {
	mu     sync.Mutex
	latest []types.PositionUpdate
	target *net.UDPAddr
	period time.Duration
}

func NewSender(target string, period time.Duration) (*Sender, error) {
	addr, err := net.ResolveUDPAddr("udp4", target)
	if err != nil {
		return nil, err
	}
	if period <= 0 {
		period = 20 * time.Millisecond
	}
	return &Sender{target: addr, period: period}, nil
}

// UpdateData replaces the batch to be transmitted. A nil batch stops
// transmission until fresh data arrives.
func (s *Sender) UpdateData(updates []types.PositionUpdate) {
	s.mu.Lock()
	s.latest = updates
	s.mu.Unlock()
}

// Run sends the latest batch at the configured rate until the context is
// cancelled.
func (s *Sender) Run(ctx context.Context) error {
	conn, err := net.DialUDP("udp4", nil, s.target)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Big write buffer for bursts.
	conn.SetWriteBuffer(1024 * 1024)

	log.Infof("ICD sender transmitting to %s every %s", s.target, s.period)

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.mu.Lock()
			batch := s.latest
			s.mu.Unlock()

			if len(batch) == 0 {
				continue
			}
			payload, err := json.Marshal(batch)
			if err != nil {
				log.Errorf("ICD encode failed: %v", err)
				continue
			}
			if _, err := conn.Write(payload); err != nil {
				log.Warnf("ICD send failed: %v", err)
			}
		}
	}
}
