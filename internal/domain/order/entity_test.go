package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderInfo_StatusName(t *testing.T) {
	assert.Equal(t, "unpaid", (&OrderInfo{Status: StatusUnpaid}).StatusName())
	assert.Equal(t, "paid", (&OrderInfo{Status: StatusPaid}).StatusName())
	assert.Equal(t, "shipped", (&OrderInfo{Status: StatusShipped}).StatusName())
	assert.Equal(t, "delivered", (&OrderInfo{Status: StatusDelivered}).StatusName())
	assert.Equal(t, "completed", (&OrderInfo{Status: StatusCompleted}).StatusName())
	assert.Equal(t, "unknown", (&OrderInfo{Status: 42}).StatusName())
}

func TestOrderInfo_PayMethodName(t *testing.T) {
	assert.Equal(t, "pay on delivery", (&OrderInfo{PayMethod: PayMethodOnDelivery}).PayMethodName())
	assert.Equal(t, "alipay", (&OrderInfo{PayMethod: PayMethodAlipay}).PayMethodName())
	assert.Equal(t, "unknown", (&OrderInfo{PayMethod: 0}).PayMethodName())
}

func TestValidPayMethod(t *testing.T) {
	for m := PayMethodOnDelivery; m <= PayMethodUnionPay; m++ {
		assert.True(t, ValidPayMethod(m))
	}
	assert.False(t, ValidPayMethod(0))
	assert.False(t, ValidPayMethod(5))
}

func TestOrderInfo_GrandTotal(t *testing.T) {
	info := &OrderInfo{TotalAmount: 5960, TransCost: 1000}
	assert.Equal(t, int64(6960), info.GrandTotal())
}

func TestNewOrderID_EmbedsUserID(t *testing.T) {
	id := newOrderID(42)
	assert.Len(t, id, 16) // 14-digit timestamp + "42"
	assert.Equal(t, "42", id[14:])
}
