package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type amountPayload struct {
	Amount string `json:"amount" validate:"money_amount"`
}

type typePayload struct {
	Type string `json:"type" validate:"transaction_type"`
}

type datePayload struct {
	Date string `json:"date" validate:"iso_date"`
}

func TestMoneyAmountRule(t *testing.T) {
	v := GetValidator().GetValidate()

	valid := []string{"0.01", "1", "42.50", "99999999.99"}
	for _, amount := range valid {
		assert.NoError(t, v.Struct(amountPayload{Amount: amount}), amount)
	}

	invalid := []string{"0", "0.00", "-5.00", "1.999", "abc", ""}
	for _, amount := range invalid {
		assert.Error(t, v.Struct(amountPayload{Amount: amount}), amount)
	}
}

func TestTransactionTypeRule(t *testing.T) {
	v := GetValidator().GetValidate()

	assert.NoError(t, v.Struct(typePayload{Type: "income"}))
	assert.NoError(t, v.Struct(typePayload{Type: "expense"}))

	for _, typ := range []string{"transfer", "INCOME", ""} {
		assert.Error(t, v.Struct(typePayload{Type: typ}), typ)
	}
}

func TestISODateRule(t *testing.T) {
	v := GetValidator().GetValidate()

	assert.NoError(t, v.Struct(datePayload{Date: "2024-02-29"}))

	invalid := []string{"2023-02-29", "01-02-2024", "2024/01/02", "2024-13-01", ""}
	for _, date := range invalid {
		assert.Error(t, v.Struct(datePayload{Date: date}), date)
	}
}

func TestFieldNamesComeFromJSONTags(t *testing.T) {
	v := GetValidator().GetValidate()

	err := v.Struct(amountPayload{Amount: "bad"})
	assert.ErrorContains(t, err, "amount")
}

func TestGetValidatorReturnsSingleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
