package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]int{"population": 1000}))
	assert.Equal(t, "{\n  \"population\": 1000\n}\n", buf.String())

	assert.Error(t, PrintJSON(&buf, make(chan int)))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "6.30%", Percent(6.2977, 2))
	assert.Equal(t, "1%", Percent(1, 0))
}
