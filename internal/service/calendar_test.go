package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendar_October2023(t *testing.T) {
	cal := BuildCalendar(2023, time.October, deadlines)

	assert.Equal(t, "October 2023", cal.Label)
	// Oct 1 2023 is a Sunday: no leading blanks.
	require.Len(t, cal.Cells, 31)
	require.NotNil(t, cal.Cells[0].Day)
	assert.Equal(t, 1, *cal.Cells[0].Day)

	byDay := map[int][]string{}
	for _, c := range cal.Cells {
		for _, d := range c.Deadlines {
			byDay[*c.Day] = append(byDay[*c.Day], d.ID)
		}
	}
	assert.Equal(t, map[int][]string{15: {"d3"}, 24: {"d1"}, 28: {"d2"}}, byDay)
}

func TestBuildCalendar_LeadingBlanks(t *testing.T) {
	// Feb 1 2024 is a Thursday.
	cal := BuildCalendar(2024, time.February, nil)
	require.Len(t, cal.Cells, 4+29)
	for i := 0; i < 4; i++ {
		assert.Nil(t, cal.Cells[i].Day)
	}
	assert.Equal(t, 1, *cal.Cells[4].Day)
	assert.Equal(t, 29, *cal.Cells[len(cal.Cells)-1].Day)
}

func TestShiftMonth(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		offset    int
		wantYear  int
		wantMonth time.Month
	}{
		{"next", 2023, time.October, 1, 2023, time.November},
		{"previous", 2023, time.October, -1, 2023, time.September},
		{"into next year", 2023, time.December, 1, 2024, time.January},
		{"into previous year", 2023, time.January, -1, 2022, time.December},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m := ShiftMonth(tt.year, tt.month, tt.offset)
			assert.Equal(t, tt.wantYear, y)
			assert.Equal(t, tt.wantMonth, m)
		})
	}
}
