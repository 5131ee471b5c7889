package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebitRejectsEmptyBucket(t *testing.T) {
	user := User{Balance50Min: 0}

	err := user.DebitClass(Duration50)

	var balanceErr *InsufficientBalanceError
	require.ErrorAs(t, err, &balanceErr)
	assert.Equal(t, Duration50, balanceErr.Duration)
	assert.Equal(t, 0, user.Balance50Min)
}

func TestDebitOnlyTouchesMatchingBucket(t *testing.T) {
	user := User{Balance25Min: 2, Balance50Min: 3, Balance80Min: 1}

	require.NoError(t, user.DebitClass(Duration50))

	assert.Equal(t, 2, user.Balance25Min)
	assert.Equal(t, 2, user.Balance50Min)
	assert.Equal(t, 1, user.Balance80Min)
}

func TestCreditThenDebitRoundTrip(t *testing.T) {
	var user User

	user.CreditClasses(Duration80, 2)
	assert.Equal(t, 2, user.BalanceFor(Duration80))

	require.NoError(t, user.DebitClass(Duration80))
	user.CreditClasses(Duration80, 1)

	assert.Equal(t, 2, user.BalanceFor(Duration80))
}

func TestTotalBalance(t *testing.T) {
	user := User{Balance25Min: 1, Balance50Min: 2, Balance80Min: 3}
	assert.Equal(t, 6, user.TotalBalance())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	user := User{TimeZone: "Not/AZone"}
	assert.Equal(t, "UTC", user.Location().String())

	user.TimeZone = "Europe/Madrid"
	assert.Equal(t, "Europe/Madrid", user.Location().String())
}
