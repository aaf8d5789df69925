package main

import (
	"fmt"
	"os"

	"github.com/justinpbarnett/devtop/internal/update"
)

func runVersion(repo string) {
	fmt.Printf("devtop version %s\n", Version)

	if Version == "dev" {
		fmt.Println("Development build — update check skipped.")
		return
	}

	rel, err := update.CheckForUpdate(Version, repo)
	if err != nil {
		fmt.Printf("Update check failed: %v\n", err)
		return
	}

	if rel != nil {
		fmt.Printf("Update available: v%s. Run \"devtop update\" to install.\n", rel.Version)
	} else {
		fmt.Println("You are up to date.")
	}
}

func runUpdate(repo string) {
	rel, err := update.Apply(Version, repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated to v%s.\n", rel.Version)
}
