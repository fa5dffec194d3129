// Package compileinfo reports the VCS state a looptrace layer binary was built
// from.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type CompileInfo struct {
	Binary     string `json:"binary"`
	GoVersion  string `json:"goVersion"`
	Commit     string `json:"commit"`
	CommitTime string `json:"commitTime"`
	Modified   bool   `json:"modified"`
}

func (c CompileInfo) String() string {
	if c.Commit == "" {
		return fmt.Sprintf("%s was built with %s outside of version control.", c.binaryName(), c.GoVersion)
	}

	dirty := ""
	if c.Modified {
		dirty = " with uncommitted changes"
	}

	return fmt.Sprintf("%s was built with %s from commit %s (%s)%s.", c.binaryName(), c.GoVersion, c.Commit, c.CommitTime, dirty)
}

func (c CompileInfo) binaryName() string {
	if c.Binary == "" {
		return "This binary"
	}
	return c.Binary
}

// Get reads the build settings embedded by the go tool. The result is empty
// for binaries built without module support.
func Get() CompileInfo {
	var out CompileInfo

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = info.GoVersion
	out.Binary = info.Path
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	fmt.Fprintln(os.Stderr, Get())
}
