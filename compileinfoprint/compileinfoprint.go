// compileinfoprint is imported by the looptrace binaries for the side effect
// of printing their build info to os.Stderr at startup.
package compileinfoprint

import "github.com/carbocation/looptracereader/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
