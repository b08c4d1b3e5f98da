package removebook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/features/command/removebook"
)

func Test_Decide_Success_WhenBookIsAvailable(t *testing.T) {
	// arrange
	state := removebook.State{
		Book:      core.Book{ID: 5, Title: "Dune", Status: core.BookAvailable},
		BookFound: true,
	}

	// act
	result := removebook.Decide(state, removebook.BuildCommand(5, time.Now()))

	// assert
	require.NoError(t, result.HasError())
	event, ok := result.Event.(core.BookRemovedFromCatalog)
	require.True(t, ok, "Expected BookRemovedFromCatalog event")
	assert.Equal(t, core.BookID(5), event.BookID)
	assert.Equal(t, "Dune", event.Title)
}

func Test_Decide_BusinessErrors(t *testing.T) {
	testCases := []struct {
		name        string
		state       removebook.State
		expectedErr error
	}{
		{
			name:        "book does not exist",
			state:       removebook.State{},
			expectedErr: core.ErrBookNotFound,
		},
		{
			name: "book is loaned",
			state: removebook.State{
				Book:      core.Book{ID: 5, Title: "Dune", Status: core.BookLoaned},
				BookFound: true,
			},
			expectedErr: core.ErrBookCurrentlyLoaned,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := removebook.Decide(tc.state, removebook.BuildCommand(5, time.Now()))

			// assert
			assert.False(t, result.HasEventToApply())
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
		})
	}
}
