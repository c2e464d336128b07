//go:build !noaudio

package main

import (
	"log"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"
)

func init() {
	features = append(features, "audio")
}

const sampleRate = 44100

// this is runtime info for generating the waves
type wave struct {
	step, phase float64
}

// a single segment of sounds, volume, and step information
type playSegment struct {
	steps    int64   // total steps
	level    float64 // volume multiplier
	waves    []wave  // runtime info on the sound
	rampDown int64   // # of steps below which we fade the level
}

type playbackPattern struct {
	*portaudio.Stream
	segments         []playSegment
	curSegment       int
	segmentRemaining int64
}

// playPattern loops the pattern until stop is closed
func playPattern(pattern []soundSegment, stop chan struct{}) {
	if err := portaudio.Initialize(); err != nil {
		log.Println(errors.Wrap(err, "portaudio").Error())
		<-stop
		return
	}
	defer portaudio.Terminate()

	pb, err := newPlaybackPattern(pattern)
	if err != nil {
		log.Println(err.Error())
		<-stop
		return
	}
	defer pb.Close()
	if err := pb.Start(); err != nil {
		log.Println(errors.Wrap(err, "start stream").Error())
		<-stop
		return
	}

	<-stop
	pb.Stop()
}

func newPlaySegments(pattern []soundSegment) []playSegment {
	segments := make([]playSegment, len(pattern))
	for i, p := range pattern {
		segments[i].waves = make([]wave, len(p.frequencies))
		segments[i].level = p.level
		segments[i].steps = int64(p.duration * time.Duration(sampleRate) / time.Second)
		segments[i].rampDown = int64(p.rampDown * time.Duration(sampleRate) / time.Second)
		for w, f := range p.frequencies {
			segments[i].waves[w].step = f / sampleRate
		}
	}
	return segments
}

func newPlaybackPattern(pattern []soundSegment) (*playbackPattern, error) {
	pb := &playbackPattern{curSegment: -1, segments: newPlaySegments(pattern)}
	var err error
	pb.Stream, err = portaudio.OpenDefaultStream(0, 2, sampleRate, 0, pb.processAudio)
	if err != nil {
		return nil, errors.Wrap(err, "open stream")
	}
	return pb, nil
}

func (g *playbackPattern) segmentInit(seg *playSegment) {
	g.segmentRemaining = seg.steps
	for i := range seg.waves {
		seg.waves[i].phase = 0
	}
}

func (g *playbackPattern) processAudio(out [][]float32) {
	for i := range out[0] {
		// start the next segment?
		if g.segmentRemaining <= 0 {
			g.curSegment = (g.curSegment + 1) % len(g.segments)
			g.segmentInit(&g.segments[g.curSegment])
		}
		curSeg := &g.segments[g.curSegment]
		g.segmentRemaining--

		// ramp down from normal level to 0 near the end of the segment
		level := curSeg.level
		if g.segmentRemaining < curSeg.rampDown {
			level = level * float64(g.segmentRemaining) / float64(curSeg.rampDown)
		}
		var val float32
		for w := range curSeg.waves {
			val += float32(math.Sin(2*math.Pi*curSeg.waves[w].phase) * level)
			_, curSeg.waves[w].phase = math.Modf(curSeg.waves[w].phase + curSeg.waves[w].step)
		}
		if len(curSeg.waves) > 0 {
			val = val / float32(len(curSeg.waves))
		}

		out[0][i] = val // L
		out[1][i] = val // R
	}
}
