package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-records/core"
)

func Test_DueAt_DateOnly_IsDueAtStartOfDay(t *testing.T) {
	// arrange
	dueAt := core.DueOn(time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC))

	// act + assert
	assert.False(t, dueAt.IsOverdueAt(time.Date(2024, time.May, 2, 23, 59, 59, 0, time.UTC)), "day before is on time")
	assert.False(t, dueAt.IsOverdueAt(time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)), "exactly at day start is on time")
	assert.True(t, dueAt.IsOverdueAt(time.Date(2024, time.May, 3, 0, 0, 1, 0, time.UTC)), "any time later on the due day is late")
	assert.True(t, dueAt.IsOverdueAt(time.Date(2024, time.May, 4, 9, 0, 0, 0, time.UTC)))
}

func Test_DueAt_DateOnly_ResolvesInReturnLocation(t *testing.T) {
	// arrange
	plusTwo := time.FixedZone("UTC+2", 2*3600)
	dueAt := core.DueOn(time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC))

	// act
	deadline := dueAt.Deadline(plusTwo)

	// assert
	assert.Equal(t, time.Date(2024, time.May, 3, 0, 0, 0, 0, plusTwo), deadline)
	assert.False(t, dueAt.IsOverdueAt(time.Date(2024, time.May, 2, 23, 30, 0, 0, plusTwo)))
}

func Test_DueAt_Instant_ComparesExactly(t *testing.T) {
	// arrange
	due := time.Date(2024, time.May, 3, 10, 5, 0, 0, time.UTC)
	dueAt := core.DueBy(due)

	// act + assert
	assert.False(t, dueAt.IsOverdueAt(due.Add(-time.Minute)))
	assert.False(t, dueAt.IsOverdueAt(due))
	assert.True(t, dueAt.IsOverdueAt(due.Add(time.Second)))
}

func Test_DueAt_String_DependsOnGranularity(t *testing.T) {
	// arrange
	dateDue := core.DueOn(time.Date(2024, time.May, 3, 15, 0, 0, 0, time.UTC))
	instant := time.Date(2024, time.May, 3, 10, 5, 7, 0, time.Local)
	instantDue := core.DueBy(instant)

	// act + assert
	assert.Equal(t, "2024-05-03", dateDue.String())
	assert.Equal(t, "2024-05-03 10:05:07", instantDue.String())
	assert.Equal(t, "", core.DueAt{}.String())
}

func Test_DueAt_MarshalText(t *testing.T) {
	text, err := core.DueOn(time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)).MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "2024-05-03", string(text))

	_, err = core.DueAt{}.MarshalText()
	assert.ErrorIs(t, err, core.ErrZeroDueAt)
}
