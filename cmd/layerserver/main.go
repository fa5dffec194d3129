// layerserver serves looptrace layers as JSON over HTTP, so that hosts other
// than a local process can ask whether a path is readable and fetch its layers.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/storage"
	"github.com/carbocation/looptracereader"
	_ "github.com/carbocation/looptracereader/compileinfoprint"
	"github.com/carbocation/looptracereader/config"
)

func main() {
	configPath := flag.String("config", "", "(Optional) YAML config file.")
	port := flag.Int("port", 0, "(Optional) Port for HTTP server. Overrides the config file.")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalln(err)
	}
	cfg.ApplyEnvironment(os.LookupEnv)
	if *port > 0 {
		cfg.Port = *port
	}

	// Without credentials the server still reads local paths.
	sclient, err := storage.NewClient(context.Background())
	if err != nil {
		log.Println("Google Storage is unavailable:", err)
		sclient = nil
	} else {
		defer sclient.Close()
	}

	global := &Global{
		log:    log.New(os.Stderr, log.Prefix(), log.Ldate|log.Ltime),
		config: cfg,
		opener: looptracereader.FileOpener{Client: sclient},
	}

	errs := make(chan error, 1)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		global.log.Println("Starting HTTP server on port", cfg.Port)
		errs <- http.ListenAndServe(fmt.Sprintf(`:%d`, cfg.Port), router(global))
	}()

	select {
	case s := <-sig:
		global.log.Printf("Exit: %s\n", s)
	case err := <-errs:
		global.log.Println("Exiting due to error", err)
		os.Exit(1)
	}
}
