// Command wfdsource runs the Wi-Fi Display (Miracast) source-side RTSP
// control plane.
package main

import (
	"os"

	"github.com/mirasrc/wfdsource/internal/core"
)

func main() {
	c, ok := core.New(os.Args[1:])
	if !ok {
		os.Exit(1)
	}
	c.Wait()
}
