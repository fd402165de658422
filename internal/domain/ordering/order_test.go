package ordering

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFulfillmentMethodIsValid(t *testing.T) {
	tests := []struct {
		method FulfillmentMethod
		valid  bool
	}{
		{FulfillmentDineIn, true},
		{FulfillmentTakeaway, true},
		{FulfillmentDelivery, true},
		{FulfillmentMethod("pickup"), false},
		{FulfillmentMethod(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.method.IsValid())
		})
	}
}

func TestOrderIsScheduled(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		time      string
		scheduled bool
	}{
		{"date and time set", "2026-09-01", "18:30", true},
		{"date only", "2026-09-01", "", false},
		{"time only", "", "18:30", false},
		{"neither", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{FulfillmentDate: tt.date, FulfillmentTime: tt.time}
			assert.Equal(t, tt.scheduled, order.IsScheduled())
		})
	}
}

func TestOrderPaidOnline(t *testing.T) {
	pay := func(provider string) Payment {
		return Payment{Provider: provider, Amount: decimal.NewFromFloat(10)}
	}

	tests := []struct {
		name     string
		payments PaymentList
		online   bool
	}{
		{"no payments", nil, false},
		{"single online provider", PaymentList{pay("ideal")}, true},
		{"multiple online providers", PaymentList{pay("ideal"), pay("bancontact")}, true},
		{"cash provider", PaymentList{pay("cash")}, false},
		{"cash in mixed case", PaymentList{pay("Cash")}, false},
		{"cash variant", PaymentList{pay("cash_on_delivery")}, false},
		{"one cash among online", PaymentList{pay("ideal"), pay("cash")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{Payments: tt.payments}
			assert.Equal(t, tt.online, order.PaidOnline())
		})
	}
}

func TestOrderDeliveryRemark(t *testing.T) {
	tests := []struct {
		name       string
		address    string
		postalCode string
		city       string
		want       string
	}{
		{"all fields", "Stationsstraat 12", "1234 AB", "Utrecht", "Stationsstraat 12, 1234 AB, Utrecht"},
		{"missing postal code", "Stationsstraat 12", "", "Utrecht", "Stationsstraat 12, Utrecht"},
		{"address only", "Stationsstraat 12", "", "", "Stationsstraat 12"},
		{"no fields", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{
				DeliveryAddress:    tt.address,
				DeliveryPostalCode: tt.postalCode,
				DeliveryCity:       tt.city,
			}
			assert.Equal(t, tt.want, order.DeliveryRemark())
		})
	}
}

func TestOrderMarkPushed(t *testing.T) {
	order := &Order{}
	assert.False(t, order.IsPushed())

	order.MarkPushed(4242)

	require.NotNil(t, order.RemoteOrderID)
	assert.Equal(t, int64(4242), *order.RemoteOrderID)
	assert.True(t, order.IsPushed())
}
