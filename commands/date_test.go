package commands

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC)
	}

	cases := goldenTestSuite{
		"now":         {Args: []string{}},
		"ignore-args": {Args: []string{"+%s"}},
	}

	cases.Run(t, Date(clock))
}
