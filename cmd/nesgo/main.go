// Command nesgo runs the NES emulator.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"nesgo/internal/app"
	"nesgo/internal/version"
)

func main() {
	var (
		romFile     = flag.String("rom", "", "path to an iNES ROM file")
		configFile  = flag.String("config", "", "path to the JSON config file")
		scale       = flag.Int("scale", 0, "window scale override")
		audioFlag   = flag.String("audio", "", "audio backend override: portaudio, wav, none")
		recordAudio = flag.String("record-audio", "", "record audio to the given WAV file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}
	if *romFile == "" {
		fmt.Fprintln(os.Stderr, "usage: nesgo -rom game.nes [-config nesgo.json]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := app.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("[APP] config: %v", err)
	}
	if *scale > 0 {
		cfg.Window.Scale = *scale
	}
	if *audioFlag != "" {
		cfg.Audio.Backend = *audioFlag
	}
	if *recordAudio != "" {
		cfg.Audio.Backend = "wav"
		cfg.Audio.WavPath = *recordAudio
	}

	a, err := app.New(cfg, *romFile)
	if err != nil {
		log.Fatalf("[APP] %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("[APP] %v", err)
	}
}
