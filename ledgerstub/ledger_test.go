package ledgerstub

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDepositWithdraw(t *testing.T) {
	l := NewLedger()

	_, err := l.Balance("100")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	got, err := l.Deposit("100", d("10"))
	require.NoError(t, err)
	assert.True(t, d("10").Equal(got.Balance))

	got, err = l.Withdraw("100", d("4.5"))
	require.NoError(t, err)
	assert.True(t, d("5.5").Equal(got.Balance))

	_, err = l.Withdraw("100", d("100"))
	assert.ErrorIs(t, err, ErrInsufficient)
	_, err = l.Withdraw("200", d("1"))
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = l.Deposit("100", d("0"))
	assert.ErrorIs(t, err, ErrBadAmount)
}

func TestTransfer(t *testing.T) {
	l := NewLedger()
	_, _ = l.Deposit("100", d("15"))

	origin, dest, err := l.Transfer("100", "300", d("15"))
	require.NoError(t, err)
	assert.True(t, origin.Balance.IsZero())
	assert.True(t, d("15").Equal(dest.Balance))

	_, _, err = l.Transfer("100", "300", d("1"))
	assert.ErrorIs(t, err, ErrInsufficient)
	_, _, err = l.Transfer("999", "300", d("1"))
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, _, err = l.Transfer("300", "300", d("1"))
	assert.ErrorIs(t, err, ErrSameAccount)
}

func TestConcurrentTransfersKeepTotal(t *testing.T) {
	l := NewLedger()
	_, _ = l.Deposit("a", d("1000"))
	_, _ = l.Deposit("b", d("1000"))

	const n = 200
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _, _ = l.Transfer("a", "b", d("1"))
		}()
		go func() {
			defer wg.Done()
			_, _, _ = l.Transfer("b", "a", d("1"))
		}()
	}
	wg.Wait()

	a, _ := l.Balance("a")
	b, _ := l.Balance("b")
	assert.True(t, d("2000").Equal(a.Add(b)))
}

func TestReset(t *testing.T) {
	l := NewLedger()
	_, _ = l.Deposit("100", d("1"))
	l.Reset()
	_, err := l.Balance("100")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
