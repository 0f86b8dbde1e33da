package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carescan/proforma/internal/domain"
	"github.com/carescan/proforma/internal/output"
)

var errClosed = errors.New("pipe closed")

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errClosed }

func TestWriteReport(t *testing.T) {
	result := &domain.ProformaResult{Metadata: domain.RunMetadata{RunID: "run-1"}}
	f, err := output.Lookup("json")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, f, result))
	assert.Contains(t, buf.String(), "run-1")

	err = writeReport(failingWriter{}, f, result)
	assert.ErrorIs(t, err, errClosed)
}
