// Package prompt composes the directive text that seeds every conversation.
package prompt

import (
	"fmt"
	"strings"

	"github.com/tbxark/formassist/forms"
)

// DefaultPreamble holds the behavioural rules shared by every form.
const DefaultPreamble = `You are a helpful, patient assistant for filling out banking forms, designed especially for elderly users who may not be tech-savvy.

**SMART BEHAVIORS:**

1. **Automatic Date:**
   - DO NOT ask for the date
   - Automatically use today's date in DD/MM/YYYY format
   - Just mention: "I'll use today's date (DD/MM/YYYY) for this form."

2. **Account Number Validation:**
   - ONLY ask for re-confirmation if the account number does not have the number of digits the form requires
   - If the user provides the right number of digits, accept it immediately without asking to verify

3. **Amount Processing:**
   - When the user says an amount, convert it to words yourself
   - Just confirm: "Got it, ₹5,000 (Five Thousand Rupees)"

4. **Email Handling:**
   - Email is OPTIONAL
   - When asking for email, say: "Do you have an email address? (It's optional - you can skip this if you don't have one)"
   - If they say "no", "don't have", "skip", respond warmly: "No problem! We can skip the email."`

// DefaultConfirmationProtocol is the shared three-step confirmation gate.
const DefaultConfirmationProtocol = `**CRITICAL: CONFIRMATION BEFORE FORM GENERATION**

After collecting ALL required fields:

**STEP 1: SHOW SUMMARY**
Display all collected information in a clear, easy-to-read format with checkmarks (✓) for each field.

**STEP 2: ASK FOR CONFIRMATION**
"Are all these details correct?"
- If yes, say 'yes' or 'correct' or 'proceed'
- If anything needs to be changed, just tell me which field

**STEP 3: OUTPUT THE EXACT JSON FORMAT AFTER CONFIRMATION**
After the user confirms with "yes", "correct", "proceed", etc., you MUST say:
"Perfect! Your form is ready. Click the button above to view and print it."

Then on a new line, output: {{FORM_DATA: {{...all the data...}}}}

**IMPORTANT RULES:**
1. ALWAYS show the summary before generating the form
2. WAIT for user confirmation
3. After confirmation, include the {{FORM_DATA: ...}} JSON block with ALL collected values
4. The JSON MUST be on its own line after your message

Remember: Be helpful, patient, and make this easy for elderly users!`

const acknowledgmentPrefix = "Understood. "

type composerOptions struct {
	preamble string
	protocol string
}

// ComposerOption customises a Composer.
type ComposerOption func(*composerOptions)

// WithPreamble overrides the shared behavioural preamble.
func WithPreamble(preamble string) ComposerOption {
	return func(o *composerOptions) {
		o.preamble = preamble
	}
}

// WithConfirmationProtocol overrides the shared confirmation instructions.
func WithConfirmationProtocol(protocol string) ComposerOption {
	return func(o *composerOptions) {
		o.protocol = protocol
	}
}

// Composer turns a form identifier into directive text. It holds no mutable
// state, so the same identifier always yields the same bytes.
type Composer struct {
	registry *forms.Registry
	preamble string
	protocol string
}

func NewComposer(registry *forms.Registry, opts ...ComposerOption) *Composer {
	options := composerOptions{
		preamble: DefaultPreamble,
		protocol: DefaultConfirmationProtocol,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return &Composer{
		registry: registry,
		preamble: options.preamble,
		protocol: options.protocol,
	}
}

// Registry exposes the template registry the composer reads from.
func (c *Composer) Registry() *forms.Registry {
	return c.registry
}

// Compose returns the directive for formID. Unknown identifiers get the
// preamble and confirmation protocol only.
func (c *Composer) Compose(formID string) string {
	tpl := c.registry.Lookup(formID)
	sections := []string{c.preamble}
	if !tpl.Generic() {
		sections = append(sections, formatFormSection(tpl)...)
	}
	sections = append(sections, c.protocol)
	return strings.Join(sections, "\n\n")
}

// Acknowledgment returns the synthetic assistant reply that follows the
// directive, carrying the form's opening instruction. A named but unknown
// form asks the user which form they want.
func (c *Composer) Acknowledgment(formID string) string {
	if formID != "" && !c.registry.Has(formID) {
		return acknowledgmentPrefix + forms.UnknownFormOpening
	}
	return acknowledgmentPrefix + c.registry.Lookup(formID).Opening
}

// Greeting returns the user-facing first prompt for formID.
func (c *Composer) Greeting(formID string) string {
	return c.registry.Lookup(formID).Greeting
}

func formatFormSection(tpl *forms.Template) []string {
	sections := []string{fmt.Sprintf("**SELECTED FORM: %s**", tpl.Title)}
	if s := formatFieldTable(tpl.Fields); s != "" {
		sections = append(sections, s)
	}
	if s := formatNotesSection(tpl.Notes); s != "" {
		sections = append(sections, s)
	}
	if s := formatExampleSection(tpl); s != "" {
		sections = append(sections, s)
	}
	return sections
}
