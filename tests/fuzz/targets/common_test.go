package targets

import (
	"os"
	"runtime"
)

func init() {
	capFuzzProcs()
}

// capFuzzProcs caps fuzz worker parallelism unless the caller explicitly
// set GOMAXPROCS.
func capFuzzProcs() {
	if _, ok := os.LookupEnv("GOMAXPROCS"); ok {
		return
	}
	max := runtime.NumCPU()
	if max > 4 {
		max = 4
	}
	if runtime.GOMAXPROCS(0) > max {
		runtime.GOMAXPROCS(max)
	}
}
