package main

import (
	"fmt"
	"os"

	"github.com/alimgiray/gcommits/internal/export"
	"github.com/alimgiray/gcommits/internal/repositories"
	"github.com/alimgiray/gcommits/internal/services"
	"github.com/alimgiray/gcommits/pkg/config"
	"github.com/alimgiray/gcommits/pkg/logger"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.SetOutput(os.Stderr)

	a := &app{
		cfg:         config.AppConfig,
		credentials: services.NewCredentialService(repositories.NewKeyringRepository()),
		clipboard:   export.SystemClipboard{},
	}

	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
