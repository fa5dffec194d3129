package main

import (
	"github.com/carbocation/looptracereader"
	"github.com/carbocation/looptracereader/config"
	"github.com/carbocation/looptracereader/layer"
	"github.com/carbocation/looptracereader/nuclei"
	"github.com/carbocation/looptracereader/points"
)

// Global is the read-only state shared by every request.
type Global struct {
	log    logger
	config *config.Config
	opener looptracereader.Opener
}

// Lookups lists the readers tried, in order, for a requested path.
func (g *Global) Lookups() []layer.Lookup {
	return []layer.Lookup{
		points.Lookup(g.opener),
		nuclei.Lookup(g.config.NucleiOptions()),
	}
}

type logger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}
