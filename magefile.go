//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	binDir  = "bin"
	appName = "nexuskit-payments"
)

var Default = Build

func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

func Vet() error {
	fmt.Println("Vetting...")
	return sh.RunV("go", "vet", "./...")
}

func Test() error {
	mg.Deps(Vet)
	fmt.Println("Testing...")
	return sh.RunV("go", "test", "./...", "-count=1")
}

// Build compiles the server and paycli into bin/.
func Build() error {
	mg.Deps(Tidy)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}

	env := map[string]string{"CGO_ENABLED": "1"}
	targets := map[string]string{
		appName:  ".",
		"paycli": "./cmd/paycli",
	}
	for name, pkg := range targets {
		out := filepath.Join(binDir, name+exeSuffix())
		fmt.Println("Building:", out)
		if err := sh.RunWithV(env, "go", "build", "-trimpath", "-o", out, pkg); err != nil {
			return err
		}
	}
	return nil
}

// Run starts the server against the card simulator and a local sqlite file.
func Run() error {
	env := map[string]string{
		"STRIPE_MOCK_MODE": "true",
		"DB_DRIVER":        "sqlite",
		"LOG_FORMAT":       "text",
	}
	fmt.Println("Running (go run) on :8080 ...")
	return sh.RunWithV(env, "go", "run", ".")
}

func Clean() error {
	fmt.Println("Cleaning...")
	return os.RemoveAll(binDir)
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
