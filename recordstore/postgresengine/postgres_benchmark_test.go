package postgresengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
	"github.com/AntonStoeckl/library-records/testutil/recordstore/postgreswrapper"
)

func Benchmark_LendAndReturn_With_Many_Books_InTheStore(b *testing.B) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(b)
	defer wrapper.Close()
	rs := wrapper.RecordStore()

	// arrange
	var bookID int64
	for i := 0; i < 1000; i++ {
		id, err := rs.InsertBook(ctx, recordstore.StorableBook{
			Title:         "Fixture Book",
			Author:        "Fixture Author",
			YearPublished: 1990,
			LoanType:      int(core.LoanTypeTwoDays),
		})
		require.NoError(b, err)
		bookID = id
	}

	customerID, err := rs.InsertCustomer(ctx, recordstore.StorableCustomer{Name: "Bench Reader", City: "Graz", Age: 33})
	require.NoError(b, err)

	fakeClock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	// act
	b.Run("lend and return 1 book", func(b *testing.B) {
		b.ResetTimer()
		var lendTime, returnTime time.Duration

		for i := 0; i < b.N; i++ {
			b.StopTimer()
			fakeClock = fakeClock.Add(time.Second)
			policy, policyErr := core.LoanTypeTwoDays.Policy()
			require.NoError(b, policyErr)
			loan, mapErr := shell.StorableLoanFrom(core.Loan{
				CustomerID: customerID,
				BookID:     bookID,
				LoanedOn:   core.ToCalendarDate(fakeClock),
				DueAt:      policy.DueAt(fakeClock),
			})
			require.NoError(b, mapErr)

			b.StartTimer()
			start := time.Now()
			lendErr := rs.LendBook(ctx, loan)
			lendTime += time.Since(start)

			start = time.Now()
			returnErr := rs.ReturnBook(ctx, customerID, bookID, nil)
			returnTime += time.Since(start)
			b.StopTimer()

			assert.NoError(b, lendErr)
			assert.NoError(b, returnErr)
		}

		b.ReportMetric(float64(lendTime.Microseconds())/float64(b.N), "µs/lend-op")
		b.ReportMetric(float64(returnTime.Microseconds())/float64(b.N), "µs/return-op")
	})
}
