package integration_test

import "time"

const (
	TestFilmID       = "0e33c7f6-27a9-4a6a-8e7b-6c2f3c9d3f11"
	TestOtherFilmID  = "9b7a3c1e-4d2f-4e8a-b6c5-7f1e2d3c4b5a"
	TestFilmTitle    = "Archaeologists of the Future"
	TestFilmDirector = "Itan Mirsky"

	TestSessionID      = "f2e1d6a4-4a3c-4d4c-9a61-5a1c1b0e8d22"
	TestLaterSessionID = "5d1b1cd9-9c4a-45f0-8a3e-0c7d1ab8a4e9"
	TestUnknownID      = "6c1f0a62-5b7d-4b4e-9d8f-1a2b3c4d5e6f"

	TestEmail = "viewer@example.com"
	TestPhone = "+79001234567"
)

var (
	TestFilmTags            = []string{"Action", "Fantasy"}
	TestSessionDaytime      = time.Date(2024, 6, 28, 10, 0, 0, 0, time.UTC)
	TestLaterSessionDaytime = time.Date(2024, 6, 28, 14, 0, 0, 0, time.UTC)
)
