//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Opens the viewer on humangl.toml when present.
func (Run) Viewer() error {
	fmt.Println("Run viewer...")
	if _, err := executeCmd("go", withArgs(append([]string{"run", "."}, configArgs()...)...), withStream()); err != nil {
		return err
	}
	return nil
}

// Renders the configured capture into ./frames.
func (Run) Capture() error {
	fmt.Println("Run capture...")
	if _, err := executeCmd("go", withArgs(append([]string{"run", "./cmd/capture"}, configArgs()...)...), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the unit tests of every package.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}
