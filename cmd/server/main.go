package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"

	"tactical-sim/internal/icd"
	"tactical-sim/internal/sim/bridge"
	"tactical-sim/internal/sim/editor"
	"tactical-sim/internal/sim/engine"
	"tactical-sim/internal/sim/generator"
	"tactical-sim/internal/sim/store"
	"tactical-sim/pkg/types"
)

// copNotifier is the collaborator side of the command/event boundary:
// lifecycle events go to the operator log, position batches to the ICD
// sender.
type copNotifier struct {
	sender *icd.Sender
}

func (n *copNotifier) PathAdded(p types.Path) {
	log.Infof("added %s | %.1fnm | %.0fkts | %.0fft", p.ID, p.DistanceNM, p.SpeedKts, p.AltitudeFt)
}

func (n *copNotifier) PathRemoved(id string) {
	log.Infof("removed %s", id)
}

func (n *copNotifier) PathsCleared() {
	n.sender.UpdateData(nil)
	log.Info("all paths cleared")
}

func (n *copNotifier) EditStarted(id string) {
	log.Infof("editing %s", id)
}

func (n *copNotifier) EditStopped(final types.Path) {
	log.Infof("edit stopped on %s | %.1fnm | %d waypoints", final.ID, final.DistanceNM, len(final.Waypoints))
}

func (n *copNotifier) PositionUpdates(updates []types.PositionUpdate) {
	n.sender.UpdateData(updates)
}

func main() {
	icdTarget := flag.String("icd", icd.DefaultTarget, "ICD consumer address (UDP)")
	tickPeriod := flag.Duration("tick", engine.DefaultPeriod, "simulation tick period")
	seedAircraft := flag.Int("aircraft", 50, "random aircraft paths to generate at startup")
	seedTracks := flag.Int("tracks", 100, "random track paths to generate at startup")
	flag.Parse()

	log.SetHeader("${time_rfc3339} ${level}")

	sender, err := icd.NewSender(*icdTarget, *tickPeriod)
	if err != nil {
		log.Fatalf("invalid ICD target %q: %v", *icdTarget, err)
	}

	paths := store.New()
	sessions := editor.New(paths)
	boundary := bridge.New(paths, sessions, &copNotifier{sender: sender})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := sender.Run(ctx); err != nil {
			log.Fatalf("ICD sender: %v", err)
		}
	}()

	ticker := engine.New(paths, *tickPeriod, boundary.ForwardUpdates)
	go ticker.Run(ctx)

	if *seedAircraft > 0 || *seedTracks > 0 {
		gen := generator.New(boundary, generator.DefaultRegions())
		go func() {
			if err := gen.Generate(*seedAircraft, *seedTracks); err != nil {
				log.Errorf("bulk generation: %v", err)
			}
		}()
	}

	stats := time.NewTicker(5 * time.Second)
	defer stats.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return
		case <-stats.C:
			aircraft, tracks := boundary.Counts()
			log.Infof("Aircraft: %d | Tracks: %d", aircraft, tracks)
		}
	}
}
