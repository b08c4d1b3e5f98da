package removecustomer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/features/command/removecustomer"
)

func Test_Decide_Success_WhenCustomerHasNoOpenLoan(t *testing.T) {
	// arrange
	state := removecustomer.State{
		Customer:      core.Customer{ID: 8, Name: "Jane Doe"},
		CustomerFound: true,
	}

	// act
	result := removecustomer.Decide(state, removecustomer.BuildCommand(8, time.Now()))

	// assert
	require.NoError(t, result.HasError())
	event, ok := result.Event.(core.CustomerRemoved)
	require.True(t, ok, "Expected CustomerRemoved event")
	assert.Equal(t, core.CustomerID(8), event.CustomerID)
	assert.Equal(t, "Jane Doe", event.Name)
}

func Test_Decide_BusinessErrors(t *testing.T) {
	testCases := []struct {
		name        string
		state       removecustomer.State
		expectedErr error
	}{
		{
			name:        "customer does not exist",
			state:       removecustomer.State{},
			expectedErr: core.ErrCustomerNotFound,
		},
		{
			name: "customer has an open loan",
			state: removecustomer.State{
				Customer:      core.Customer{ID: 8, Name: "Jane Doe"},
				CustomerFound: true,
				OpenLoans:     1,
			},
			expectedErr: core.ErrCustomerHasOpenLoan,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := removecustomer.Decide(tc.state, removecustomer.BuildCommand(8, time.Now()))

			// assert
			assert.False(t, result.HasEventToApply())
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
		})
	}
}
