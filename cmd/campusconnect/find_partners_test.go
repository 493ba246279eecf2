package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetFindFlags() {
	findProfileText = ""
	findProfileFile = ""
	findUserID = ""
	findDatabaseURL = ""
	findAPIKey = ""
	findVerbose = false
}

func TestRunFindPartners_FlagValidation(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")

	t.Run("missing profile", func(t *testing.T) {
		resetFindFlags()
		err := runFindPartners(nil, nil)
		assert.ErrorContains(t, err, "profile text is required")
	})

	t.Run("profile and profile-file together", func(t *testing.T) {
		resetFindFlags()
		findProfileText = "some text"
		findProfileFile = "profile.txt"
		err := runFindPartners(nil, nil)
		assert.ErrorContains(t, err, "cannot use --profile with --profile-file")
	})

	t.Run("missing api key", func(t *testing.T) {
		resetFindFlags()
		findProfileText = "some text"
		err := runFindPartners(nil, nil)
		assert.ErrorContains(t, err, "API key is required")
	})

	t.Run("missing database url", func(t *testing.T) {
		resetFindFlags()
		findProfileText = "some text"
		findAPIKey = "fake-key"
		err := runFindPartners(nil, nil)
		assert.ErrorContains(t, err, "database URL is required")
	})

	t.Run("unreadable profile file", func(t *testing.T) {
		resetFindFlags()
		findProfileFile = "/does/not/exist.txt"
		err := runFindPartners(nil, nil)
		assert.ErrorContains(t, err, "failed to read profile file")
	})
}
