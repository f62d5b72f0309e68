package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor(t *testing.T) {
	// Test case 1: Standard timestamp and ID
	timestamp := time.Date(2026, 1, 5, 14, 30, 45, 123456789, time.UTC)

	token := EncodeCursor(timestamp, "txn_123")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedTimestamp, decodedID, err := DecodeCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, timestamp, decodedTimestamp, "Timestamp should match after decode")
	assert.Equal(t, "txn_123", decodedID, "ID should match after decode")

	// Test case 2: Zero time value
	zeroTime := time.Time{}
	zeroToken := EncodeCursor(zeroTime, "txn_zero")
	decodedZeroTime, decodedZeroID, err := DecodeCursor(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedZeroTime, "Zero timestamp should match after decode")
	assert.Equal(t, "txn_zero", decodedZeroID, "ID should match after decode")

	// Test case 3: Current time value
	now := time.Now().UTC()
	nowToken := EncodeCursor(now, "txn_now")
	decodedNow, _, err := DecodeCursor(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")

	// Due to potential nanosecond precision issues, use Equal instead of direct comparison
	assert.True(t, now.Equal(decodedNow), "Current timestamp should match after decode")

	// Test case 4: ID containing the separator survives the round trip
	pipeToken := EncodeCursor(timestamp, "txn|odd")
	_, pipeID, err := DecodeCursor(pipeToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, "txn|odd", pipeID, "ID with separator should survive the round trip")
}

func TestDecodeCursorError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodeCursor("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	invalidToken := "MjAyNi0wMS0wNVQwMDowMDowMFo=" // Base64 encoded timestamp without separator
	_, _, err = DecodeCursor(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid timestamp
	invalidTimeToken := "bm90YXRpbWV8dHhuXzEyMw==" // Base64 encoded "notatime|txn_123"
	_, _, err = DecodeCursor(invalidTimeToken)
	assert.Error(t, err, "Should return an error for invalid timestamp")
	assert.Contains(t, err.Error(), "timestamp parse", "Error should mention timestamp parsing issue")
}
