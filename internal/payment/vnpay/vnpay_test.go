package vnpay

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient() *Client {
	return NewClient("TESTTMN", "bimatthunghiem", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html", "http://localhost:5173/payment-success")
}

func TestBuildPaymentURL(t *testing.T) {
	c := newTestClient()

	payURL, err := c.BuildPaymentURL(PaymentRequest{
		OrderCode: "DH-2026-ABC12345",
		Amount:    150000,
		OrderInfo: "Thanh toan don hang DH-2026-ABC12345",
		ClientIP:  "127.0.0.1",
		CreatedAt: time.Date(2026, 8, 28, 10, 30, 0, 0, time.Local),
	})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(payURL, c.PayURL+"?"))

	u, err := url.Parse(payURL)
	assert.NoError(t, err)
	q := u.Query()
	// số tiền nhân 100 theo quy ước của cổng
	assert.Equal(t, "15000000", q.Get("vnp_Amount"))
	assert.Equal(t, "DH-2026-ABC12345", q.Get("vnp_TxnRef"))
	assert.Equal(t, "TESTTMN", q.Get("vnp_TmnCode"))
	assert.Equal(t, "20260828103000", q.Get("vnp_CreateDate"))
	assert.NotEmpty(t, q.Get("vnp_SecureHash"))
}

func TestVerifyReturnRoundTrip(t *testing.T) {
	c := newTestClient()

	payURL, err := c.BuildPaymentURL(PaymentRequest{
		OrderCode: "DH-2026-XYZ99999",
		Amount:    99000,
		OrderInfo: "test",
		ClientIP:  "127.0.0.1",
		CreatedAt: time.Now(),
	})
	assert.NoError(t, err)

	u, _ := url.Parse(payURL)
	query := u.Query()
	// cổng trả thêm kết quả giao dịch, không nằm trong chữ ký gửi đi
	// nên ở đây chỉ kiểm tra các tham số gửi đi tự xác minh được
	result, ok := c.VerifyReturn(query)
	assert.True(t, ok)
	assert.Equal(t, "DH-2026-XYZ99999", result.OrderCode)
}

func TestVerifyReturnRejectsTamperedQuery(t *testing.T) {
	c := newTestClient()

	payURL, _ := c.BuildPaymentURL(PaymentRequest{
		OrderCode: "DH-2026-XYZ99999",
		Amount:    99000,
		OrderInfo: "test",
		ClientIP:  "127.0.0.1",
		CreatedAt: time.Now(),
	})
	u, _ := url.Parse(payURL)
	query := u.Query()
	query.Set("vnp_Amount", "100")

	_, ok := c.VerifyReturn(query)
	assert.False(t, ok)
}

func TestVerifyReturnMissingSignature(t *testing.T) {
	c := newTestClient()

	query := url.Values{}
	query.Set("vnp_TxnRef", "DH-2026-XYZ99999")
	query.Set("vnp_ResponseCode", "00")

	_, ok := c.VerifyReturn(query)
	assert.False(t, ok)
}

func TestVerifyReturnSuccessCode(t *testing.T) {
	c := newTestClient()

	params := url.Values{}
	params.Set("vnp_TxnRef", "DH-2026-XYZ99999")
	params.Set("vnp_ResponseCode", "00")
	params.Set("vnp_TransactionNo", "14227489")
	params.Set("vnp_Amount", "9900000")
	signed := c.sign(encodeSorted(params))
	params.Set("vnp_SecureHash", signed)

	result, ok := c.VerifyReturn(params)
	assert.True(t, ok)
	assert.True(t, result.Success)
	assert.Equal(t, "14227489", result.TransactionNo)

	// mã khác 00 là giao dịch thất bại dù chữ ký đúng
	params.Del("vnp_SecureHash")
	params.Set("vnp_ResponseCode", "24")
	params.Set("vnp_SecureHash", c.sign(encodeSorted(params)))
	result, ok = c.VerifyReturn(params)
	assert.True(t, ok)
	assert.False(t, result.Success)
}
