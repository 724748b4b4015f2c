package icd

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"tactical-sim/pkg/types"
)

func TestSenderTransmitsLatestBatch(t *testing.T) {
	listener, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	s, err := NewSender(listener.LocalAddr().String(), 5*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSender: %v", err)
	}
	s.UpdateData([]types.PositionUpdate{{
		ID:         "AC-0001",
		Kind:       types.KindAircraft,
		Lat:        20.5,
		Lon:        78.5,
		AltitudeFt: 15000,
		SpeedKts:   450,
		BearingDeg: 42,
	}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	listener.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 64*1024)
	n, _, err := listener.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("no ICD packet received: %v", err)
	}

	var batch []types.PositionUpdate
	if err := json.Unmarshal(buf[:n], &batch); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if len(batch) != 1 || batch[0].ID != "AC-0001" || batch[0].SpeedKts != 450 {
		t.Errorf("batch = %+v", batch)
	}
}

func TestSenderSkipsEmptyBatches(t *testing.T) {
	listener, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	s, err := NewSender(listener.LocalAddr().String(), time.Millisecond)
	if err != nil {
		t.Fatalf("NewSender: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	listener.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
	buf := make([]byte, 1024)
	if n, _, err := listener.ReadFromUDP(buf); err == nil {
		t.Errorf("received %d bytes with no data pending", n)
	}
}

func TestNewSenderRejectsBadTarget(t *testing.T) {
	if _, err := NewSender("not-a-host:port:extra", time.Second); err == nil {
		t.Error("expected error for malformed target")
	}
}
