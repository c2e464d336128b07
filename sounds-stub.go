//go:build noaudio

package main

import (
	"log"
)

func init() {
	features = append(features, "noaudio")
}

func playPattern(pattern []soundSegment, stop chan struct{}) {
	log.Println("STUB: playPattern")
	<-stop
}
