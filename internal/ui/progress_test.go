package ui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer

	err := Spin(&buf, "Building release APK", func() error {
		time.Sleep(250 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Building release APK")
}

func TestSpinReturnsFnError(t *testing.T) {
	var buf bytes.Buffer
	wantErr := errors.New("exit status 1")

	err := Spin(&buf, "Building debug APK", func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}
