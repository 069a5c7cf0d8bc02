package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMessageReturnsVietnameseMessage(t *testing.T) {
	assert.Equal(t, "Số dư tài khoản không đủ", GetMessage("INSUFFICIENT_FUNDS", "vi"))
}

func TestGetMessageReturnsEnglishMessage(t *testing.T) {
	assert.Equal(t, "insufficient funds", GetMessage("INSUFFICIENT_FUNDS", "en"))
}

func TestGetMessageFallsBackToDefaultLanguage(t *testing.T) {
	assert.Equal(t, "Số dư tài khoản không đủ", GetMessage("INSUFFICIENT_FUNDS", "de"))
	assert.Equal(t, "Số dư tài khoản không đủ", GetMessage("INSUFFICIENT_FUNDS", ""))
}

func TestGetMessageReturnsCodeForUnknownCode(t *testing.T) {
	assert.Equal(t, "UNKNOWN_ERROR_CODE_X", GetMessage("UNKNOWN_ERROR_CODE_X", "en"))
}

func TestCatalogsCoverTheSameCodes(t *testing.T) {
	for code := range messages[DefaultLanguage] {
		_, ok := messages["en"][code]
		assert.True(t, ok, "missing english message for %s", code)
	}
	for code := range suggestions[DefaultLanguage] {
		_, ok := suggestions["en"][code]
		assert.True(t, ok, "missing english suggestions for %s", code)
	}
}

func TestGetSuggestionsReturnsCopy(t *testing.T) {
	s := GetSuggestions("CARD_DECLINED", "vi")
	s[0] = "mutated"

	assert.Equal(t, "Kiểm tra số dư tài khoản", GetSuggestions("CARD_DECLINED", "vi")[0])
}

func TestGetSuggestionsUnknownCodeIsNil(t *testing.T) {
	assert.Nil(t, GetSuggestions("AMOUNT_NOT_POSITIVE", "vi"))
}
