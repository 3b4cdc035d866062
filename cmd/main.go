package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

// @title Questree API
// @version 1.0
// @description Branching questionnaires: tests whose choices can reveal follow-up questions, taken one answer at a time in sessions.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	if err := Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
