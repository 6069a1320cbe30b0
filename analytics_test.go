package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildData(t *testing.T) {
	t.Log("it creates complex data")
	{
		data := buildData(errors.New("testError"))
		require.Equal(t, "testError", data["error"])
		require.Equal(t, "xcode-localization", data["source"])
	}

	t.Log("error is optional")
	{
		data := buildData(nil)
		_, ok := data["error"]
		require.False(t, ok)
		require.Equal(t, "xcode-localization", data["source"])
	}
}
