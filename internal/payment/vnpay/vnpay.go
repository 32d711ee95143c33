package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Client dựng URL thanh toán VNPay và xác minh chữ ký callback.
// Giao thức: tham số vnp_* sắp theo tên, ký HMAC-SHA512 trên chuỗi
// query đã encode, chữ ký gắn vào vnp_SecureHash.
type Client struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

func NewClient(tmnCode, hashSecret, payURL, returnURL string) *Client {
	return &Client{
		TmnCode:    tmnCode,
		HashSecret: hashSecret,
		PayURL:     payURL,
		ReturnURL:  returnURL,
	}
}

// PaymentRequest là thông tin cần để tạo phiên thanh toán
type PaymentRequest struct {
	OrderCode string
	// Số tiền VND; VNPay yêu cầu nhân 100
	Amount    float64
	OrderInfo string
	ClientIP  string
	CreatedAt time.Time
}

// BuildPaymentURL dựng URL chuyển hướng sang cổng VNPay
func (c *Client) BuildPaymentURL(req PaymentRequest) (string, error) {
	params := url.Values{}
	params.Set("vnp_Version", "2.1.0")
	params.Set("vnp_Command", "pay")
	params.Set("vnp_TmnCode", c.TmnCode)
	params.Set("vnp_Amount", strconv.FormatInt(int64(req.Amount*100), 10))
	params.Set("vnp_CurrCode", "VND")
	params.Set("vnp_TxnRef", req.OrderCode)
	params.Set("vnp_OrderInfo", req.OrderInfo)
	params.Set("vnp_OrderType", "other")
	params.Set("vnp_Locale", "vn")
	params.Set("vnp_ReturnUrl", c.ReturnURL)
	params.Set("vnp_IpAddr", req.ClientIP)
	params.Set("vnp_CreateDate", req.CreatedAt.Format("20060102150405"))
	params.Set("vnp_ExpireDate", req.CreatedAt.Add(15*time.Minute).Format("20060102150405"))

	signData := encodeSorted(params)
	secureHash := c.sign(signData)

	return c.PayURL + "?" + signData + "&vnp_SecureHash=" + secureHash, nil
}

// ReturnResult là kết quả đã xác minh từ callback của cổng
type ReturnResult struct {
	OrderCode     string
	ResponseCode  string
	TransactionNo string
	Success       bool
}

// VerifyReturn xác minh chữ ký của query trả về từ VNPay.
// Trả về false khi thiếu hoặc sai vnp_SecureHash.
func (c *Client) VerifyReturn(query url.Values) (*ReturnResult, bool) {
	received := query.Get("vnp_SecureHash")
	if received == "" {
		return nil, false
	}

	params := url.Values{}
	for key, values := range query {
		if key == "vnp_SecureHash" || key == "vnp_SecureHashType" {
			continue
		}
		if strings.HasPrefix(key, "vnp_") && len(values) > 0 {
			params.Set(key, values[0])
		}
	}

	expected := c.sign(encodeSorted(params))
	if !hmac.Equal([]byte(strings.ToLower(received)), []byte(expected)) {
		return nil, false
	}

	code := params.Get("vnp_ResponseCode")
	return &ReturnResult{
		OrderCode:     params.Get("vnp_TxnRef"),
		ResponseCode:  code,
		TransactionNo: params.Get("vnp_TransactionNo"),
		Success:       code == "00",
	}, true
}

// encodeSorted encode query với khóa sắp tăng dần, khớp cách VNPay ký
func encodeSorted(params url.Values) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params.Get(key)))
	}
	return b.String()
}

func (c *Client) sign(data string) string {
	mac := hmac.New(sha512.New, []byte(c.HashSecret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
