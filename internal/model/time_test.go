package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveTime_MarshalJSON(t *testing.T) {
	at := time.Date(2023, time.October, 12, 9, 30, 0, 0, time.Local)

	b, err := json.Marshal(ArchiveTime(at))
	require.NoError(t, err)
	assert.Equal(t, `"Oct 12, 2023 09:30"`, string(b))

	b, err = json.Marshal(ArchiveTime(time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
