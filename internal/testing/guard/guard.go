// Package guard flips the application into test mode when blank-imported
// from a test. Binaries check the flag and refuse to start their network
// listeners under `go test`.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("SAVORIA_TEST_MODE") == "" {
			_ = os.Setenv("SAVORIA_TEST_MODE", "1")
		}
	})
}
