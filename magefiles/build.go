//go:build mage

// Package main provides build targets for the athena project using Mage.
//
// Usage:
//
//	mage build      Compile athena binary to bin/
//	mage test:all   Run all tests
//	mage test:unit  Run only unit tests
//	mage lint       Run golangci-lint
//	mage clean      Remove build artifacts
//	mage install    Install athena to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "athena"
	binaryDir  = "bin"
	cmdDir     = "./cmd/athena"
)

// Build compiles the athena binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install installs the athena binary to GOPATH/bin.
func Install() error {
	return sh.RunV(binGo, "install", cmdDir)
}
