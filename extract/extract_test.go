package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/formassist/forms"
	"github.com/tbxark/formassist/prompt"
	"github.com/tbxark/formassist/record"
)

func TestExtractWithoutMarkerReturnsTextUnchanged(t *testing.T) {
	raw := "  Which branch would you like to use?\n```json\n{\"a\": 1}\n```  "
	res := New(forms.Withdrawal()).Extract(raw)
	assert.Equal(t, raw, res.Clean)
	assert.False(t, res.Complete)
	assert.Nil(t, res.Fields)
	assert.Empty(t, res.Attempts)
}

func TestExtractDoubledBraceMarker(t *testing.T) {
	raw := "Perfect! Your form is ready.\n{{FORM_DATA: {{\"form_type\": \"WITHDRAWAL\", \"branch\": \"Main\", \"amount\": 5000}}}}"
	res := New(forms.Withdrawal()).Extract(raw)
	require.True(t, res.Complete)
	assert.Equal(t, StrategyDoubledMarker, res.Strategy)
	assert.Equal(t, record.Record{"form_type": "WITHDRAWAL", "branch": "Main", "amount": "5000"}, res.Fields)
	assert.Equal(t, "Perfect! Your form is ready.", res.Clean)
}

func TestExtractSingleBraceMarker(t *testing.T) {
	raw := "Done. {FORM_DATA: {\"form_type\": \"KYC\", \"name\": \"A {B}\"}} Thanks!"
	res := New(forms.KYC()).Extract(raw)
	require.True(t, res.Complete)
	assert.Equal(t, StrategySingleMarker, res.Strategy)
	assert.Equal(t, "A {B}", res.Fields["name"])
	assert.Equal(t, "Done.  Thanks!", res.Clean)
}

func TestExtractFencedJSON(t *testing.T) {
	raw := "Here is your FORM_DATA:\n```json\n{\"form_type\": \"DD\", \"amount\": \"100\"}\n```\nBye"
	res := New(forms.DemandDraft()).Extract(raw)
	require.True(t, res.Complete)
	assert.Equal(t, StrategyFencedJSON, res.Strategy)
	assert.Equal(t, "100", res.Fields["amount"])
	assert.Equal(t, "0", res.Fields["denom_500_qty"])
	assert.Equal(t, "Here is your FORM_DATA:\n\nBye", res.Clean)
}

func TestExtractBareObject(t *testing.T) {
	raw := `FORM_DATA follows {"form_type": "KYC", "name": "Ravi"} end`
	res := New(forms.KYC()).Extract(raw)
	require.True(t, res.Complete)
	assert.Equal(t, StrategyBareObject, res.Strategy)
	assert.Equal(t, record.Record{"form_type": "KYC", "name": "Ravi"}, res.Fields)
	assert.Equal(t, "FORM_DATA follows  end", res.Clean)
}

func TestExtractKeepsProseObjectsBesideMarker(t *testing.T) {
	raw := `You wrote {"branch": "Main"} earlier. {{FORM_DATA: {{"form_type": "KYC", "branch": "City"}}}}`
	e := New(forms.KYC())
	res := e.Extract(raw)
	require.True(t, res.Complete)
	assert.Equal(t, StrategyDoubledMarker, res.Strategy)
	assert.Equal(t, "City", res.Fields["branch"])
	assert.Equal(t, `You wrote {"branch": "Main"} earlier.`, res.Clean)

	again := e.Extract(res.Clean)
	assert.Equal(t, res.Clean, again.Clean)
	assert.False(t, again.Complete)
}

func TestExtractStripsRecoverableLeftovers(t *testing.T) {
	raw := "```json\n{\"form_type\": \"KYC\"}\n``` FORM_DATA {\"form_type\": \"KYC\", \"branch\": \"Main\"}"
	res := New(forms.KYC()).Extract(raw)
	require.True(t, res.Complete)
	assert.Equal(t, StrategyFencedJSON, res.Strategy)
	assert.Equal(t, "FORM_DATA", res.Clean)
}

func TestExtractMalformedFallsThrough(t *testing.T) {
	raw := "Ready {{FORM_DATA: {{not json}}}}\n```json\n{\"form_type\": \"KYC\"}\n```"
	res := New(forms.KYC()).Extract(raw)
	require.True(t, res.Complete)
	assert.Equal(t, StrategyFencedJSON, res.Strategy)
	require.GreaterOrEqual(t, len(res.Attempts), 2)
	assert.Equal(t, Malformed, res.Attempts[0].Status)
	assert.Equal(t, StrategyDoubledMarker, res.Attempts[0].Strategy)
	assert.Equal(t, "Ready", res.Clean)
}

func TestExtractMalformedOnlyDegrades(t *testing.T) {
	raw := "Your form is ready. {{FORM_DATA: {{form_type: broken}}}}"
	res := New(forms.KYC()).Extract(raw)
	assert.False(t, res.Complete)
	assert.Nil(t, res.Fields)
	assert.NotEmpty(t, res.Attempts)
	assert.Equal(t, "Your form is ready.", res.Clean)
}

func TestExtractUnterminatedMarker(t *testing.T) {
	raw := "Almost there {{FORM_DATA: {{\"form_type\": \"KYC\""
	res := New(forms.KYC()).Extract(raw)
	assert.False(t, res.Complete)
	assert.Equal(t, "Almost there", res.Clean)
}

func TestExtractFlattensDenominationBreakdown(t *testing.T) {
	raw := `Perfect! {{FORM_DATA: {{"form_type": "DEPOSIT", "total_amount": "1000", "denomination_breakdown": {{"500": 2}}}}}}`
	res := New(forms.Deposit()).Extract(raw)
	require.True(t, res.Complete)

	assert.Equal(t, "2", res.Fields["denom_500_qty"])
	assert.NotContains(t, res.Fields, BreakdownKey)
	for _, unit := range []string{"2000", "200", "100", "50", "20", "10", "5", "coins"} {
		assert.Equal(t, "0", res.Fields[forms.DenominationKey(unit)], unit)
	}
	assert.Equal(t, "Perfect!", res.Clean)
}

func TestExtractDepositBreakdownWithCoins(t *testing.T) {
	raw := `Done! {{FORM_DATA: {{"form_type": "DEPOSIT", "denomination_breakdown": {{"500": 2, "coins": 3}}}}}}`
	res := New(forms.Deposit()).Extract(raw)
	require.True(t, res.Complete)

	assert.Equal(t, "2", res.Fields["denom_500_qty"])
	assert.Equal(t, "3", res.Fields["denom_coins_qty"])
	assert.NotContains(t, res.Fields, BreakdownKey)
	for _, unit := range forms.DepositDenominations {
		if unit == "500" || unit == "coins" {
			continue
		}
		assert.Equal(t, "0", res.Fields[forms.DenominationKey(unit)], unit)
	}
	assert.Equal(t, "Done!", res.Clean)
}

func TestExtractKeepsLongNumbersExact(t *testing.T) {
	raw := `{FORM_DATA: {"form_type": "DEBIT_CARD", "account_number": 12345678901234567890, "amount": 5000.50}}`
	res := New(forms.DebitCard()).Extract(raw)
	require.True(t, res.Complete)
	assert.Equal(t, "12345678901234567890", res.Fields["account_number"])
	assert.Equal(t, "5000.50", res.Fields["amount"])
}

func TestExtractBreakdownWithGenericTemplate(t *testing.T) {
	raw := `{FORM_DATA: {"denomination_breakdown": {"100": "3"}}}`
	res := New(nil).Extract(raw)
	require.True(t, res.Complete)
	assert.Equal(t, "3", res.Fields["denom_100_qty"])
	assert.Equal(t, "0", res.Fields["denom_coins_qty"])
	assert.Len(t, res.Fields, len(forms.DepositDenominations))
}

func TestExtractIsIdempotentOnCleanText(t *testing.T) {
	inputs := []string{
		"Great {{FORM_DATA: {{\"form_type\": \"KYC\"}}}} done",
		"Ok {FORM_DATA: {broken",
		"```json\n{\"x\": 1}\n``` FORM_DATA {\"form_type\": \"KYC\"}",
		"No marker here.",
	}
	e := New(forms.KYC())
	for _, raw := range inputs {
		first := e.Extract(raw)
		second := e.Extract(first.Clean)
		assert.Equal(t, first.Clean, second.Clean, raw)
		assert.False(t, second.Complete, raw)
	}
}

func TestExampleMarkersRoundTrip(t *testing.T) {
	for _, tpl := range forms.Builtin().Templates() {
		want := record.Record{}
		for _, p := range tpl.Example {
			want[p.Key] = p.Value
		}
		res := New(tpl).Extract("Perfect!\n" + prompt.ExampleMarker(tpl))
		require.True(t, res.Complete, tpl.ID)
		assert.Equal(t, StrategyDoubledMarker, res.Strategy, tpl.ID)
		assert.Equal(t, want, res.Fields, tpl.ID)
		assert.Equal(t, "Perfect!", res.Clean, tpl.ID)
	}
}

func TestWithStrategiesOverridesCascade(t *testing.T) {
	e := New(forms.KYC(), WithStrategies(fencedStrategy{}))
	res := e.Extract(`{{FORM_DATA: {{"form_type": "KYC"}}}}`)
	assert.False(t, res.Complete)
	assert.Empty(t, res.Clean)
}

func TestBalancedEnd(t *testing.T) {
	assert.Equal(t, 2, balancedEnd("{}", 0))
	assert.Equal(t, 7, balancedEnd(`{"}":1}x`, 0))
	assert.Equal(t, -1, balancedEnd(`{"a": {`, 0))
	assert.Equal(t, 10, balancedEnd(`{"\"}": 1}`, 0))
}
