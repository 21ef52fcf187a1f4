// compileinfoprint is imported by the gtmatrix binaries for the side effect of
// printing the compileinfo to os.Stderr
package compileinfoprint

import "github.com/carbocation/gtmatrix/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
