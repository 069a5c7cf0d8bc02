package errors

import "strings"

const DefaultLanguage = "vi"

var messages = map[string]map[string]string{
	"vi": {
		"INVALID_REQUEST":           "Yêu cầu không hợp lệ",
		"INTERNAL_ERROR":            "Đã xảy ra lỗi hệ thống",
		"ORDER_NOT_FOUND":           "Không tìm thấy đơn hàng",
		"ORDER_ALREADY_EXISTS":      "Đơn hàng cho thanh toán này đã tồn tại",
		"ORDER_TOTAL_MISMATCH":      "Tổng tiền đơn hàng không khớp với giỏ hàng",
		"ORDER_INTENT_MISSING":      "Đơn hàng thanh toán bằng thẻ cần mã thanh toán",
		"WEBHOOK_SIGNATURE_MISSING": "Thiếu chữ ký webhook",
		"WEBHOOK_NOT_CONFIGURED":    "Webhook chưa được cấu hình",
		"WEBHOOK_SIGNATURE_INVALID": "Chữ ký webhook không hợp lệ",
		"WEBHOOK_PROCESSING_FAILED": "Không thể xử lý webhook",

		"CARD_DECLINED":         "Thẻ của bạn bị từ chối",
		"INSUFFICIENT_FUNDS":    "Số dư tài khoản không đủ",
		"EXPIRED_CARD":          "Thẻ đã hết hạn",
		"INCORRECT_CVC":         "Mã CVC không đúng",
		"PROCESSING_ERROR":      "Lỗi xử lý thanh toán",
		"CARD_ERROR":            "Có lỗi với thẻ của bạn",
		"VALIDATION_ERROR":      "Thông tin thanh toán không hợp lệ",
		"CONNECTION_ERROR":      "Không thể kết nối đến hệ thống thanh toán",
		"API_ERROR":             "Lỗi hệ thống thanh toán",
		"AUTH_ERROR":            "Lỗi xác thực hệ thống",
		"RATE_LIMIT":            "Quá nhiều yêu cầu, vui lòng thử lại sau",
		"IDEMPOTENCY_ERROR":     "Yêu cầu thanh toán trùng lặp",
		"UNKNOWN_ERROR":         "Có lỗi không xác định xảy ra",
		"NETWORK_ERROR":         "Không thể kết nối đến server",
		"MAX_RETRIES_EXCEEDED":  "Đã vượt quá số lần thử lại cho phép",
		"STRIPE_NOT_CONFIGURED": "Hệ thống thanh toán thẻ chưa được cấu hình",
		"MISSING_CLIENT_SECRET": "Không nhận được mã xác nhận thanh toán",
		"AMOUNT_NOT_POSITIVE":   "Số tiền phải lớn hơn 0",
		"AMOUNT_BELOW_MINIMUM":  "Số tiền tối thiểu là 1,000 VND",
		"AMOUNT_ABOVE_MAXIMUM":  "Số tiền tối đa là 50,000,000 VND",
		"AMOUNT_TOO_LARGE":      "Số tiền vượt quá giới hạn của cổng thanh toán",
		"OFFLINE":               "Không có kết nối mạng",
		"STRIPE_NOT_LOADED":     "Hệ thống thanh toán chưa sẵn sàng",
		"INCOMPLETE_CARD":       "Vui lòng nhập đầy đủ thông tin thẻ",
		"REQUIRES_ACTION":       "Thanh toán cần xác thực thêm",
		"UNEXPECTED_STATUS":     "Trạng thái thanh toán không xác định",
		"INVALID_CARD_NUMBER":   "Số thẻ phải có 13-19 chữ số",
		"CARD_NUMBER_INVALID":   "Số thẻ không hợp lệ",
		"INVALID_EXPIRY_MONTH":  "Tháng hết hạn không hợp lệ",
		"INVALID_CVC":           "CVC phải có 3-4 chữ số",
	},
	"en": {
		"INVALID_REQUEST":           "invalid request",
		"INTERNAL_ERROR":            "an internal error occurred",
		"ORDER_NOT_FOUND":           "order not found",
		"ORDER_ALREADY_EXISTS":      "an order for this payment already exists",
		"ORDER_TOTAL_MISMATCH":      "order total does not match its items",
		"ORDER_INTENT_MISSING":      "card orders require a payment intent id",
		"WEBHOOK_SIGNATURE_MISSING": "missing webhook signature",
		"WEBHOOK_NOT_CONFIGURED":    "webhook secret is not configured",
		"WEBHOOK_SIGNATURE_INVALID": "invalid webhook signature",
		"WEBHOOK_PROCESSING_FAILED": "webhook processing failed",

		"CARD_DECLINED":         "your card was declined",
		"INSUFFICIENT_FUNDS":    "insufficient funds",
		"EXPIRED_CARD":          "your card has expired",
		"INCORRECT_CVC":         "the CVC code is incorrect",
		"PROCESSING_ERROR":      "the payment could not be processed",
		"CARD_ERROR":            "there is a problem with your card",
		"VALIDATION_ERROR":      "invalid payment details",
		"CONNECTION_ERROR":      "cannot reach the payment processor",
		"API_ERROR":             "payment processor error",
		"AUTH_ERROR":            "payment system authentication failed",
		"RATE_LIMIT":            "too many requests, please try again later",
		"IDEMPOTENCY_ERROR":     "duplicate payment request",
		"UNKNOWN_ERROR":         "an unknown error occurred",
		"NETWORK_ERROR":         "cannot reach the server",
		"MAX_RETRIES_EXCEEDED":  "maximum number of retries exceeded",
		"STRIPE_NOT_CONFIGURED": "card payments are not configured",
		"MISSING_CLIENT_SECRET": "the payment processor returned no client secret",
		"AMOUNT_NOT_POSITIVE":   "amount must be greater than 0",
		"AMOUNT_BELOW_MINIMUM":  "minimum amount is 1,000 VND",
		"AMOUNT_ABOVE_MAXIMUM":  "maximum amount is 50,000,000 VND",
		"AMOUNT_TOO_LARGE":      "amount exceeds the payment processor limit",
		"OFFLINE":               "no network connection",
		"STRIPE_NOT_LOADED":     "the payment form is not ready",
		"INCOMPLETE_CARD":       "please complete your card details",
		"REQUIRES_ACTION":       "the payment requires additional authentication",
		"UNEXPECTED_STATUS":     "unexpected payment status",
		"INVALID_CARD_NUMBER":   "card number must have 13-19 digits",
		"CARD_NUMBER_INVALID":   "card number is invalid",
		"INVALID_EXPIRY_MONTH":  "invalid expiry month",
		"INVALID_CVC":           "CVC must have 3-4 digits",
	},
}

var suggestions = map[string]map[string][]string{
	"vi": {
		"CARD_DECLINED":         {"Kiểm tra số dư tài khoản", "Liên hệ ngân hàng để kích hoạt thẻ", "Thử sử dụng thẻ khác"},
		"INSUFFICIENT_FUNDS":    {"Nạp thêm tiền vào tài khoản", "Sử dụng thẻ khác", "Giảm số tiền thanh toán"},
		"EXPIRED_CARD":          {"Sử dụng thẻ còn hiệu lực", "Liên hệ ngân hàng để gia hạn thẻ"},
		"INCORRECT_CVC":         {"Kiểm tra lại mã CVC ở mặt sau thẻ", "Đảm bảo nhập đúng 3-4 chữ số"},
		"PROCESSING_ERROR":      {"Thử lại sau vài phút", "Liên hệ ngân hàng nếu lỗi tiếp tục"},
		"CARD_ERROR":            {"Kiểm tra lại thông tin thẻ", "Thử sử dụng thẻ khác"},
		"VALIDATION_ERROR":      {"Kiểm tra lại thông tin thẻ", "Đảm bảo thẻ chưa hết hạn"},
		"CONNECTION_ERROR":      {"Kiểm tra kết nối internet", "Thử lại sau vài phút"},
		"API_ERROR":             {"Thử lại sau vài phút", "Liên hệ hỗ trợ nếu lỗi tiếp tục"},
		"AUTH_ERROR":            {"Liên hệ hỗ trợ khách hàng"},
		"RATE_LIMIT":            {"Đợi 1-2 phút trước khi thử lại"},
		"IDEMPOTENCY_ERROR":     {"Thử lại thanh toán"},
		"UNKNOWN_ERROR":         {"Thử lại hoặc liên hệ hỗ trợ"},
		"NETWORK_ERROR":         {"Kiểm tra kết nối internet", "Thử lại sau"},
		"MAX_RETRIES_EXCEEDED":  {"Liên hệ hỗ trợ khách hàng", "Thử sử dụng phương thức thanh toán khác"},
		"STRIPE_NOT_CONFIGURED": {"Chọn phương thức thanh toán khác", "Liên hệ hỗ trợ khách hàng"},
		"MISSING_CLIENT_SECRET": {"Thử lại sau vài phút"},
		"OFFLINE":               {"Kiểm tra kết nối internet"},
		"STRIPE_NOT_LOADED":     {"Tải lại trang và thử lại"},
		"INCOMPLETE_CARD":       {"Kiểm tra lại thông tin thẻ"},
		"REQUIRES_ACTION":       {"Hoàn tất bước xác thực từ ngân hàng"},
		"UNEXPECTED_STATUS":     {"Thử lại hoặc liên hệ hỗ trợ"},
	},
	"en": {
		"CARD_DECLINED":         {"Check your account balance", "Contact your bank to activate the card", "Try another card"},
		"INSUFFICIENT_FUNDS":    {"Top up your account", "Use another card", "Reduce the payment amount"},
		"EXPIRED_CARD":          {"Use a valid card", "Contact your bank to renew the card"},
		"INCORRECT_CVC":         {"Check the CVC on the back of the card", "Make sure to enter 3-4 digits"},
		"PROCESSING_ERROR":      {"Try again in a few minutes", "Contact your bank if the problem persists"},
		"CARD_ERROR":            {"Check your card details", "Try another card"},
		"VALIDATION_ERROR":      {"Check your card details", "Make sure the card has not expired"},
		"CONNECTION_ERROR":      {"Check your internet connection", "Try again in a few minutes"},
		"API_ERROR":             {"Try again in a few minutes", "Contact support if the problem persists"},
		"AUTH_ERROR":            {"Contact customer support"},
		"RATE_LIMIT":            {"Wait 1-2 minutes before trying again"},
		"IDEMPOTENCY_ERROR":     {"Retry the payment"},
		"UNKNOWN_ERROR":         {"Try again or contact support"},
		"NETWORK_ERROR":         {"Check your internet connection", "Try again later"},
		"MAX_RETRIES_EXCEEDED":  {"Contact customer support", "Try another payment method"},
		"STRIPE_NOT_CONFIGURED": {"Choose another payment method", "Contact customer support"},
		"MISSING_CLIENT_SECRET": {"Try again in a few minutes"},
		"OFFLINE":               {"Check your internet connection"},
		"STRIPE_NOT_LOADED":     {"Reload the page and try again"},
		"INCOMPLETE_CARD":       {"Check your card details"},
		"REQUIRES_ACTION":       {"Complete the authentication step from your bank"},
		"UNEXPECTED_STATUS":     {"Try again or contact support"},
	},
}

func baseLanguage(lang string) string {
	base := strings.SplitN(lang, "-", 2)[0]
	base = strings.SplitN(base, ",", 2)[0]
	base = strings.SplitN(base, ";", 2)[0]
	return strings.TrimSpace(strings.ToLower(base))
}

func lookup(code string, lang string) (string, bool) {
	base := baseLanguage(lang)
	if msg, ok := messages[base][code]; ok {
		return msg, true
	}
	msg, ok := messages[DefaultLanguage][code]
	return msg, ok
}

// GetMessage returns the message for code in lang, falling back to
// Vietnamese and finally to the code itself.
func GetMessage(code string, lang string) string {
	if msg, ok := lookup(code, lang); ok {
		return msg
	}
	return code
}

func GetSuggestions(code string, lang string) []string {
	base := baseLanguage(lang)
	list, ok := suggestions[base][code]
	if !ok {
		list = suggestions[DefaultLanguage][code]
	}
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}
