//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

const binDir = "bin"

// Builds the OpenGL viewer.
func (Build) Viewer() error {
	return goBuild("humangl", ".")
}

// Builds the offscreen frame capture tool.
func (Build) Capture() error {
	return goBuild("humangl-capture", "./cmd/capture")
}

// Builds the ebiten software preview.
func (Build) Preview() error {
	return goBuild("humangl-preview", "./cmd/preview")
}

// Builds the terminal renderer.
func (Build) Tty() error {
	return goBuild("humangl-tty", "./cmd/tty")
}

// Builds every binary.
func (Build) All() {
	mg.Deps(Build.Viewer, Build.Capture, Build.Preview, Build.Tty)
}

func goBuild(name, pkg string) error {
	_, err := executeCmd("go", withArgs("build", "-o", binDir+"/"+name, pkg), withStream())
	return err
}
