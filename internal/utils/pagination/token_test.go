package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard date/time values
	date := time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC)
	transactionID := "txn-abc-123"

	token := EncodeToken(date, transactionID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, date, decodedDate, "Date should match after decode")
	assert.Equal(t, transactionID, decodedID, "Transaction ID should match after decode")

	// Zero time value
	zeroToken := EncodeToken(time.Time{}, transactionID)
	decodedZero, decodedID, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, time.Time{}, decodedZero, "Zero date should match after decode")
	assert.Equal(t, transactionID, decodedID)

	// Current time
	now := time.Now().UTC()
	nowToken := EncodeToken(now, transactionID)
	decodedNow, _, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(decodedNow), "Current date should match after decode")
}

func TestEncodeToken_IDContainingSeparator(t *testing.T) {
	// Only the first separator splits; the rest belongs to the ID.
	date := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	transactionID := "txn|with|pipes"

	token := EncodeToken(date, transactionID)
	decodedDate, decodedID, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, date, decodedDate)
	assert.Equal(t, transactionID, decodedID)
}

func TestDecodeTokenError(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Missing separator
	invalidToken := "MjAyMy0wNS0xNVQwMDowMDowMFo=" // Base64 encoded date without separator
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Invalid date format
	invalidDateToken := "bm90YWRhdGV8dHhuLWFiYy0xMjM=" // Base64 encoded "notadate|txn-abc-123"
	_, _, err = DecodeToken(invalidDateToken)
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "date parse", "Error should mention date parsing issue")
}
