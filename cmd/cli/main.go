package main

import (
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/minaorangina/wizard/config"
	"github.com/minaorangina/wizard/session"
	"github.com/minaorangina/wizard/terminal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	// logs would interleave with the game unless they go to a file
	logger := zap.NewNop()
	if cfg.LogFile != "" {
		if logger, err = cfg.Logger(); err != nil {
			log.Fatal(err.Error())
		}
		defer logger.Sync()
	}

	sess, err := session.New(cfg.Game(), logger)
	if err != nil {
		log.Fatal("Could not initialise a new game: " + err.Error())
	}

	if err := terminal.NewTable(sess, os.Stdin, os.Stdout).Play(); err != nil {
		log.Fatal(err.Error())
	}
}
