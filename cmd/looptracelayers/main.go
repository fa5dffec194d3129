// looptracelayers reads a looptrace points table or nuclei visualisation
// folder and writes its layers to stdout as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/looptracereader"
	_ "github.com/carbocation/looptracereader/compileinfoprint"
	"github.com/carbocation/looptracereader/config"
	"github.com/carbocation/looptracereader/layer"
	"github.com/carbocation/looptracereader/nuclei"
	"github.com/carbocation/looptracereader/points"
)

const (
	exitUsage    = 1
	exitNoReader = 2
)

func main() {
	path := flag.String("path", "", "Points table (.csv or .json, optionally compressed, may be gs://) or nuclei visualisation folder.")
	configPath := flag.String("config", "", "(Optional) YAML config file.")
	labelsRLE := flag.Bool("labels-rle", false, "(Optional) If true, run-length encode the nuclei masks layer, overriding the config file.")
	flag.Parse()

	if *path == "" {
		flag.PrintDefaults()
		os.Exit(exitUsage)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalln(err)
	}
	cfg.ApplyEnvironment(os.LookupEnv)
	if *labelsRLE {
		cfg.LabelsEncoding = config.LabelsRLE
	}

	opener := looptracereader.FileOpener{}
	if looptracereader.IsGoogleStoragePath(*path) {
		client, err := storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
		opener.Client = client
	}

	read := layer.FirstReader(*path, points.Lookup(opener), nuclei.Lookup(cfg.NucleiOptions()))
	if read == nil {
		log.Printf("No reader accepts %s\n", *path)
		os.Exit(exitNoReader)
	}

	layers, err := read(*path)
	if err != nil {
		log.Fatalln(err)
	}

	if err := writeLayers(os.Stdout, layers); err != nil {
		log.Fatalln(err)
	}
}

func writeLayers(w io.Writer, layers []layer.Layer) error {
	if layers == nil {
		layers = []layer.Layer{}
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(layers); err != nil {
		return fmt.Errorf("error encoding layers: %w", err)
	}

	return nil
}
