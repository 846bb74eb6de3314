package dao

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
)

func TestIsRetryable(t *testing.T) {
	deadlock := &mysql.MySQLError{Number: 1213}
	lockWait := &mysql.MySQLError{Number: 1205}
	serialization := &mysql.MySQLError{Number: 9999, SQLState: [5]byte{'4', '0', '0', '0', '1'}}
	duplicate := &mysql.MySQLError{Number: 1062}

	if !IsRetryable(deadlock) {
		t.Error("deadlock (1213) should be retryable")
	}
	if !IsRetryable(lockWait) {
		t.Error("lock wait timeout (1205) should be retryable")
	}
	if !IsRetryable(serialization) {
		t.Error("SQLSTATE 40001 should be retryable")
	}
	if IsRetryable(duplicate) {
		t.Error("duplicate key (1062) must not be retryable")
	}
	if IsRetryable(errors.New("plain error")) {
		t.Error("non-mysql errors must not be retryable")
	}
	if !IsRetryable(fmt.Errorf("tx failed: %w", deadlock)) {
		t.Error("wrapped retryable errors should still match")
	}
}

func TestWithRetryRecoversAfterTransientFailures(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}
	transient := errors.New("transient")
	attempts := 0

	err := withRetry(policy, func(err error) bool { return errors.Is(err, transient) }, func() error {
		attempts++
		if attempts <= 2 {
			return transient
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithRetryStopsOnNonRetryable(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}
	fatal := errors.New("constraint violation")
	attempts := 0

	err := withRetry(policy, func(error) bool { return false }, func() error {
		attempts++
		return fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("non-retryable error must not be retried, got %d attempts", attempts)
	}
}

func TestWithRetryExhaustsBudget(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}
	transient := errors.New("transient")
	attempts := 0

	err := withRetry(policy, func(error) bool { return true }, func() error {
		attempts++
		return transient
	})
	if !errors.Is(err, transient) {
		t.Fatalf("expected the last error after exhaustion, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts total, got %d", attempts)
	}
}
