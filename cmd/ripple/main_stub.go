//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of ripple requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/ripple` or build with `-tags ebiten`.")
	fmt.Fprintln(os.Stderr, "Add `-tags ebiten,opencl` and `-solver opencl` for the GPU update pass.")
	os.Exit(2)
}
