package dao

import (
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"daybook/internal/metrics"
)

// RetryPolicy bounds the retry loop for contended transactions. Delay
// doubles per attempt: BaseDelay, 2*BaseDelay, ...
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultRetryPolicy allows 3 attempts total starting at 100ms backoff.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 2, BaseDelay: 100 * time.Millisecond}

// IsRetryable reports whether err is a MySQL deadlock (1213), lock wait
// timeout (1205) or a serialization failure (SQLSTATE 40001). Everything
// else rolls back immediately.
func IsRetryable(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	if mysqlErr.Number == 1205 || mysqlErr.Number == 1213 {
		return true
	}
	return string(mysqlErr.SQLState[:]) == "40001"
}

// RunInTxWithRetry runs fn inside a transaction, retrying the whole unit on
// retryable contention errors per policy. fn must be safe to re-run from
// scratch; partial effects of a failed attempt are rolled back by gorm.
func RunInTxWithRetry(db *gorm.DB, policy RetryPolicy, fn func(tx *gorm.DB) error) error {
	return withRetry(policy, IsRetryable, func() error {
		return db.Transaction(fn)
	})
}

func withRetry(policy RetryPolicy, retryable func(error) bool, attempt func() error) error {
	var err error
	for i := 0; ; i++ {
		err = attempt()
		if err == nil || !retryable(err) || i >= policy.MaxRetries {
			return err
		}
		metrics.IncTxRetry()
		time.Sleep(policy.BaseDelay << i)
	}
}
