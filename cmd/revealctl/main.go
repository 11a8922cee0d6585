// Command revealctl inspects and simulates reveal pages without a window.
//
//	revealctl simulate page.yaml --script scroll.yaml
//	revealctl validate page.yaml
//	revealctl easings
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
