package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spend/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger, err := logging.New(&buf, "debug", "json")
	require.NoError(t, err)

	logger.Debug("expense created", "id", "abc")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "expense created", rec["msg"])
	assert.Equal(t, "abc", rec["id"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer

	logger, err := logging.New(&buf, "warn", "text")
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNew_Invalid(t *testing.T) {
	_, err := logging.New(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)

	_, err = logging.New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}
