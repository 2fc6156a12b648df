package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	movementDate := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(movementDate, createdAt)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedMovementDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, movementDate, decodedMovementDate, "Movement date should match after decode")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")

	// Zero time values survive the round trip too
	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, zeroTime)
	decodedZeroDate, decodedZeroTime, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedZeroDate, "Zero date should match after decode")
	assert.Equal(t, zeroTime, decodedZeroTime, "Zero time should match after decode")

	now := time.Now().UTC()
	nowToken := EncodeToken(now, now)
	decodedNowDate, decodedNowTime, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(decodedNowDate), "Current date should match after decode")
	assert.True(t, now.Equal(decodedNowTime), "Current time should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Base64 encoded date without the separator
	invalidToken := "MjAyMy0wNS0xNVQwMDowMDowMFo="
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Base64 encoded "notadate|2023-05-15T14:30:45.123456789Z"
	invalidDateToken := "bm90YWRhdGV8MjAyMy0wNS0xNVQxNDozMDo0NS4xMjM0NTY3ODla"
	_, _, err = DecodeToken(invalidDateToken)
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "movement date parse", "Error should mention date parsing issue")
}

func TestEncodeDecodeDateIDToken(t *testing.T) {
	openedAt := time.Date(2024, 5, 15, 8, 30, 0, 0, time.UTC)
	sessionID := "b9f4c1de-5f2a-4c3e-9d1b-7a8e6f0c2d41"

	token := EncodeDateIDToken(openedAt, sessionID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeDateIDToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, openedAt, decodedDate, "Opened at time should match after decode")
	assert.Equal(t, sessionID, decodedID, "Session ID should match after decode")

	now := time.Now().UTC()
	nowToken := EncodeDateIDToken(now, sessionID)
	decodedNow, decodedNowID, err := DecodeDateIDToken(nowToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.True(t, now.Equal(decodedNow), "Current time should match after decode")
	assert.Equal(t, sessionID, decodedNowID, "Session ID should match after decode")
}

func TestDecodeDateIDTokenError(t *testing.T) {
	_, _, err := DecodeDateIDToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Base64 encoded date without the separator
	_, _, err = DecodeDateIDToken("MjAyMy0wNS0xNVQwMDowMDowMFo=")
	assert.Error(t, err, "Should return an error for a token without an ID part")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Base64 encoded "2023-05-15T00:00:00Z|" with an empty ID part
	_, _, err = DecodeDateIDToken("MjAyMy0wNS0xNVQwMDowMDowMFp8")
	assert.Error(t, err, "Should return an error for an empty ID part")

	// Base64 encoded "notadate|some-id"
	_, _, err = DecodeDateIDToken("bm90YWRhdGV8c29tZS1pZA==")
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "date parse", "Error should mention date parsing issue")
}
