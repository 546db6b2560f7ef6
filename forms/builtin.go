package forms

const dateFormat = "DD/MM/YYYY"

// DepositDenominations is the note/coin breakdown printed on the deposit slip. It
// also serves as the fallback set when a breakdown arrives without a known form.
var DepositDenominations = []string{"2000", "500", "200", "100", "50", "20", "10", "5", "coins"}

var ddDenominations = []string{"500", "100", "50", "20", "10", "5", "2", "1"}

// Builtin returns the registry of all supported banking forms.
func Builtin() *Registry {
	return NewRegistry(
		Deposit(),
		DemandDraft(),
		TaxChallan(),
		AccountOpening(),
		DebitCard(),
		LoanApplication(),
		Withdrawal(),
		KYC(),
		AccountClosure(),
	)
}

func formTypeField(formType string) Field {
	return Field{Key: "form_type", Label: "Form type", Default: formType, Note: "always set, never ask"}
}

func req(key, label string) Field {
	return Field{Key: key, Label: label}
}

func opt(key, label string) Field {
	return Field{Key: key, Label: label, Optional: true}
}

func date(key, label string) Field {
	return Field{Key: key, Label: label, Format: dateFormat, Note: "use today's date unless the user gives one"}
}

func denominationFields(units []string) []Field {
	out := make([]Field, 0, len(units))
	for _, u := range units {
		label := "Number of ₹" + u + " notes"
		if u == "coins" {
			label = "Coins"
		}
		out = append(out, Field{Key: DenominationKey(u), Label: label, Optional: true, Default: "0"})
	}
	return out
}

func Deposit() *Template {
	fields := []Field{
		formTypeField("DEPOSIT"),
		req("branch_name", "Branch name"),
		date("date", "Date"),
		{Key: "account_number", Label: "Account number", FixedDigits: 12},
		req("account_holder_name", "Account holder name"),
		req("telephone_mobile_number", "Telephone/Mobile number"),
		{Key: "email_id", Label: "Email", Optional: true, Note: "skip warmly if the user has none"},
		{Key: "deposit_type", Label: "Deposit type", Enum: []string{"Cash", "Cheque"}},
		req("total_amount", "Amount"),
		{Key: "amount_in_words", Label: "Amount in words", Note: "derive from the amount yourself"},
	}
	fields = append(fields, denominationFields(DepositDenominations)...)
	return &Template{
		ID:            "deposit",
		Title:         "DEPOSIT SLIP",
		FormType:      "DEPOSIT",
		Fields:        fields,
		Denominations: DepositDenominations,
		Example: []Pair{
			{"form_type", "DEPOSIT"}, {"branch_name", "value"}, {"date", dateFormat},
			{"account_number", "12digits"}, {"account_holder_name", "name"},
			{"telephone_mobile_number", "phone"}, {"email_id", "email"}, {"deposit_type", "Cash"},
			{"total_amount", "1000"}, {"amount_in_words", "One Thousand Rupees"},
			{"denom_2000_qty", "0"}, {"denom_500_qty", "2"}, {"denom_200_qty", "0"},
			{"denom_100_qty", "0"}, {"denom_50_qty", "0"}, {"denom_20_qty", "0"},
			{"denom_10_qty", "0"}, {"denom_5_qty", "0"}, {"denom_coins_qty", "0"},
		},
		Notes:    []string{"If the deposit is cash, the denomination breakdown must be collected."},
		Opening:  "The user has selected DEPOSIT SLIP. Start by greeting them and asking for the branch name.",
		Greeting: "Hello! Let's fill in your deposit slip together. Which branch are you depositing at?",
	}
}

func DemandDraft() *Template {
	fields := []Field{
		formTypeField("DD"),
		req("branch_name", "Branch name"),
		date("date", "Date"),
		{Key: "instrument_type", Label: "Instrument type", Enum: []string{"DD", "Banker's Cheque"}},
		req("in_favour_of", "Beneficiary name (In Favour of)"),
		req("amount", "Amount"),
		{Key: "amount_in_words", Label: "Amount in words", Note: "derive from the amount yourself"},
		req("payable_at_branch", "Payable at (city/branch)"),
		req("applicant_name", "Applicant name"),
	}
	fields = append(fields, denominationFields(ddDenominations)...)
	return &Template{
		ID:            "dd",
		Title:         "DEMAND DRAFT / BANKER'S CHEQUE",
		FormType:      "DD",
		Fields:        fields,
		Denominations: ddDenominations,
		Example: []Pair{
			{"form_type", "DD"}, {"branch_name", "value"}, {"date", dateFormat},
			{"instrument_type", "DD"}, {"in_favour_of", "beneficiary"}, {"amount", "5000"},
			{"amount_in_words", "Five Thousand Rupees"}, {"payable_at_branch", "city"},
			{"applicant_name", "name"}, {"denom_500_qty", "10"}, {"denom_100_qty", "0"},
			{"denom_50_qty", "0"}, {"denom_20_qty", "0"}, {"denom_10_qty", "0"},
			{"denom_5_qty", "0"}, {"denom_2_qty", "0"}, {"denom_1_qty", "0"},
		},
		Notes:    []string{"Only collect a denomination breakdown if the user mentions paying cash."},
		Opening:  "The user has selected DEMAND DRAFT. Start by greeting them and asking for the branch name.",
		Greeting: "Hello! I'll help you with your demand draft. Which branch are you applying at?",
	}
}

func TaxChallan() *Template {
	return &Template{
		ID:       "tax_challan",
		Title:    "TAX CHALLAN ITNS-280",
		FormType: "TAX_CHALLAN",
		Fields: []Field{
			formTypeField("TAX_CHALLAN"),
			{Key: "pan", Label: "PAN", FixedLength: 10, Format: "ABCDE1234F"},
			req("full_name", "Full name (as per PAN)"),
			req("address", "Complete address with city and state"),
			req("tel_no", "Telephone number"),
			{Key: "pin_code", Label: "PIN code", FixedDigits: 6},
			{Key: "assessment_year", Label: "Assessment year", Format: "YYYY-YY"},
			{Key: "tax_type", Label: "Tax type", Enum: []string{"0020", "0021"}, Note: "0020 for companies, 0021 for other than companies"},
			{Key: "tax_code", Label: "Tax code", Note: "same as tax type"},
			req("income_tax", "Income tax amount"),
			{Key: "surcharge", Label: "Surcharge", Optional: true, Default: "0"},
			req("education_cess", "Education cess"),
			{Key: "interest", Label: "Interest", Optional: true, Default: "0"},
			{Key: "penalty", Label: "Penalty", Optional: true, Default: "0"},
			{Key: "others", Label: "Others", Optional: true, Default: "0"},
			{Key: "total_amount", Label: "Total amount", Note: "sum of all payment amounts"},
			{Key: "total_words", Label: "Total in words", Note: "derive from the total yourself"},
			req("bank_branch", "Bank and branch name"),
			date("payment_date", "Payment date"),
			{Key: "payment_mode", Label: "Payment mode", Enum: []string{"Cash", "Cheque", "Debit"}},
			date("debit_date", "Debit date"),
		},
		Example: []Pair{
			{"form_type", "TAX_CHALLAN"}, {"pan", "ABCDE1234F"}, {"full_name", "John Doe"},
			{"address", "123 Main Street, City, State"}, {"tel_no", "9876543210"},
			{"pin_code", "400001"}, {"assessment_year", "2024-25"}, {"tax_type", "0021"},
			{"tax_code", "0021"}, {"income_tax", "50000"}, {"surcharge", "5000"},
			{"education_cess", "1100"}, {"interest", "0"}, {"penalty", "0"}, {"others", "0"},
			{"total_amount", "56100"}, {"total_words", "Fifty Six Thousand One Hundred Rupees"},
			{"bank_branch", "State Bank of India, Mumbai Main Branch"},
			{"payment_date", dateFormat}, {"payment_mode", "Cash"}, {"debit_date", dateFormat},
		},
		Opening:  "The user has selected TAX CHALLAN ITNS-280. Start by greeting them and asking for their PAN number.",
		Greeting: "Hello! Let's prepare your ITNS-280 tax challan. What is your PAN (10 characters)?",
	}
}

func AccountOpening() *Template {
	return &Template{
		ID:       "account_opening",
		Title:    "ACCOUNT OPENING (State Bank of India - INR Currency, Indian Citizenship Assumed)",
		FormType: "ACCOUNT_OPENING",
		Fields: []Field{
			formTypeField("ACCOUNT_OPENING"),
			req("branch", "Branch name"),
			date("form_date", "Form date"),
			{Key: "product_type", Label: "Account type", Enum: []string{"savings", "current", "salary"}},
			{Key: "debit_card", Label: "Debit card", Enum: []string{"required", "not required"}},
			{Key: "title", Label: "Title", Optional: true, Enum: []string{"Mr", "Mrs", "Ms"}},
			req("first_name", "First name"),
			opt("middle_name", "Middle name"),
			req("last_name", "Last name"),
			{Key: "dob", Label: "Date of birth", Format: dateFormat},
			req("place_of_birth", "Place of birth"),
			{Key: "document_type", Label: "Identity document type", Enum: []string{"aadhaar", "passport", "voter_id", "driving_license"}},
			req("document_number", "Selected document number"),
			{Key: "iin", Label: "Aadhaar number", FixedDigits: 12, Format: "XXXX XXXX XXXX"},
			{Key: "date_of_issuance", Label: "Document issue date", Optional: true, Format: dateFormat},
			{Key: "expiry_date", Label: "Document expiry date", Optional: true, Format: dateFormat, Note: "N/A when not applicable"},
			opt("issued_by", "Issuing authority"),
			req("address", "Residential address"),
			req("city", "City"),
			{Key: "state", Label: "State", Optional: true, Enum: []string{"Andhra Pradesh", "Tamil Nadu", "Karnataka", "Kerala", "Maharashtra", "Gujarat", "Rajasthan", "Delhi", "West Bengal", "Uttar Pradesh", "Other"}},
			{Key: "postal_code", Label: "PIN code", FixedDigits: 6},
			{Key: "mobile_phone", Label: "Mobile phone", Note: "with +91 prefix"},
			{Key: "email", Label: "Email", Optional: true},
			req("employer", "Employer/company name"),
			req("position_title", "Position/designation"),
			req("monthly_salary", "Monthly gross salary (₹)"),
			{Key: "entrepreneur", Label: "Self-employed", Enum: []string{"yes", "no"}},
			{Key: "family_status", Label: "Marital status", Enum: []string{"single", "married", "divorced"}},
			req("num_children", "Number of dependents"),
			{Key: "purpose", Label: "Purpose of account opening", Note: "comma separated; Salary Credit/Savings/Business Transactions/Investments/Others"},
			{Key: "purpose_other", Label: "Other purpose", Optional: true},
			{Key: "card_delivery", Label: "Debit card delivery", Enum: []string{"branch", "home"}},
			date("signature_date", "Signature date"),
			req("signature_place", "Signature place"),
		},
		Example: []Pair{
			{"form_type", "ACCOUNT_OPENING"}, {"branch", "Main Branch"}, {"form_date", dateFormat},
			{"product_type", "current"}, {"debit_card", "required"}, {"first_name", "Rajesh"},
			{"middle_name", "Kumar"}, {"last_name", "Sharma"}, {"dob", "15/05/1985"},
			{"place_of_birth", "Mumbai"}, {"document_type", "aadhaar"},
			{"document_number", "1234 5678 9012"}, {"iin", "123456789012"},
			{"date_of_issuance", "01/01/2020"}, {"expiry_date", "N/A"}, {"issued_by", "UIDAI"},
			{"address", "123 MG Road, Andheri West"}, {"city", "Mumbai"},
			{"postal_code", "400058"}, {"mobile_phone", "9876543210"},
			{"email", "rajesh.sharma@email.com"}, {"employer", "Tech Solutions Pvt Ltd"},
			{"position_title", "Software Engineer"}, {"monthly_salary", "75000"},
			{"entrepreneur", "no"}, {"family_status", "married"}, {"num_children", "2"},
			{"purpose", "payroll,payments"}, {"card_delivery", "branch"},
			{"signature_date", dateFormat}, {"signature_place", "Mumbai"},
		},
		Notes: []string{
			"Nationality is Indian and currency is INR: pre-filled, never ask or mention.",
		},
		Opening: `The user has selected ACCOUNT OPENING FORM for State Bank of India (Indian bank - INR currency, Indian citizenship assumed).

IMPORTANT COLLECTION STRATEGY - ASK BY SECTIONS TO REDUCE API CALLS:

1. START: Ask for branch, account type (Savings/Current/Salary), and debit card requirement together
2. PERSONAL DETAILS: Title (Mr/Mrs/Ms), full name (first, middle, last), date of birth (DD/MM/YYYY), and place of birth
3. DOCUMENT SECTION: identity document type (Aadhaar Card/Passport/Voter ID/Driving License), Aadhaar number (12 digits), PAN number (10 characters), the selected document's number, and expiry date if applicable
4. CONTACT SECTION: complete residential address, city, state, PIN code (6 digits), mobile number (with +91), and email
5. EMPLOYMENT SECTION: employer/company name, position/designation, monthly gross salary in rupees, and whether they are self-employed
6. ADDITIONAL INFO: marital status, number of dependents, purpose of account opening, and card delivery preference (Collect from Branch/Home Delivery)

DEFAULT VALUES: Nationality = Indian (pre-filled, don't ask), Currency = INR (don't mention)

Start by greeting and asking for branch, account type, and debit card requirement together.`,
		Greeting: "Hello! Let's open your new account. Which branch would you like, what type of account (Savings, Current or Salary), and do you need a debit card?",
	}
}

func DebitCard() *Template {
	return &Template{
		ID:       "debit_card",
		Title:    "DEBIT CARD APPLICATION (AXIS BANK - NRE Account)",
		FormType: "DEBIT_CARD",
		Fields: []Field{
			formTypeField("DEBIT_CARD"),
			{Key: "nre_account_number", Label: "NRE account number", MaxLength: 20, Note: "digits only"},
			req("customer_id", "Customer ID"),
			req("poa_holder", "POA/LOA holder name"),
			req("mother_maiden_name", "Mother's maiden name"),
			req("dob", "Date of birth"),
			{Key: "image_card", Label: "Image card", Enum: []string{"yes", "no"}},
			{Key: "image_code", Label: "Desired image code", Optional: true, Note: "only when image card is yes"},
			{Key: "card_name", Label: "Name on card", MaxLength: 18, Note: "must not be a nickname"},
			{Key: "card_type", Label: "Card type/reason", Enum: []string{"new", "lost", "damaged", "others"}},
			{Key: "application_type", Label: "Application type", Enum: []string{"first", "joint"}},
			opt("cross_self_id", "Cross Self ID"),
			opt("bin_number", "BIN number"),
			req("poa_signature_name", "POA/LOA signature name"),
			req("account_holder_name", "Account holder name for declaration"),
		},
		Example: []Pair{
			{"form_type", "DEBIT_CARD"}, {"nre_account_number", "12345678901234567890"},
			{"customer_id", "CUST123456"}, {"poa_holder", "John Smith"},
			{"mother_maiden_name", "Johnson"}, {"dob", "1985-05-15"}, {"image_card", "yes"},
			{"image_code", "IMG001"}, {"card_name", "JOHN SMITH"}, {"card_type", "new"},
			{"application_type", "first"}, {"cross_self_id", "CS123"}, {"bin_number", "BIN456"},
			{"poa_signature_name", "John Smith"}, {"account_holder_name", "Rajesh Kumar"},
		},
		Notes: []string{"Do NOT collect Verifying Authority Details or Office Use sections; bank staff fill those."},
		Opening: `The user has selected DEBIT CARD APPLICATION for AXIS BANK (NRE Account holders with POA/LOA).

COLLECTION STRATEGY - ASK BY SECTIONS:

1. ACCOUNT DETAILS: NRE account number (up to 20 digits), customer ID, and the full name of the POA/LOA holder
2. PERSONAL INFO: mother's maiden name, date of birth, and the name to print on the card (max 18 characters, not a nickname)
3. IMAGE CARD: whether they want an image card and, if yes, the desired image code
4. CARD TYPE: New Card, Lost Card, Damaged Card, or Others, and whether this is a First or Joint application
5. OPTIONAL FIELDS: Cross Self ID or BIN Number if they have them

IMPORTANT: DO NOT ask for Verifying Authority Details or Office Use section - those are filled by bank staff only.

Start by greeting and asking for their NRE account number, customer ID, and POA/LOA holder name.`,
		Greeting: "Hello! Let me help you with your debit card application. Please share your NRE account number, customer ID, and the POA/LOA holder's full name.",
	}
}

func LoanApplication() *Template {
	return &Template{
		ID:       "loan_application",
		Title:    "LOAN APPLICATION (STATE BANK OF INDIA)",
		FormType: "LOAN_APPLICATION",
		Fields: []Field{
			formTypeField("LOAN_APPLICATION"),
			req("account_number", "Account number"),
			req("applicant_name", "Applicant name"),
			{Key: "home_address", Label: "Home address", Note: "include PIN code"},
			{Key: "previous_address", Label: "Previous address", Optional: true, Note: "only if at current address under 3 years"},
			opt("home_number", "Home (landline) number"),
			{Key: "mobile_number", Label: "Mobile number", Note: "with +91 prefix"},
			req("personal_email", "Personal email"),
			req("dob", "Date of birth"),
			{Key: "marital_status", Label: "Marital status", Enum: []string{"single", "married", "divorced"}},
			{Key: "dependents", Label: "Number of dependents", Note: "excluding children"},
			req("employer", "Employer name"),
			req("grade", "Grade/designation"),
			req("employer_address", "Employer address"),
			{Key: "employment_type", Label: "Employment type", Enum: []string{"temporary", "permanent"}},
			{Key: "service_length", Label: "Length of service", Format: "N years M months"},
			req("work_email", "Work email"),
			opt("work_tel", "Work telephone"),
			req("loan_amount", "Amount of new loan (₹)"),
			{Key: "loan_purpose", Label: "Purpose of loan", Enum: []string{"home", "vehicle", "personal", "education", "business", "other"}},
			{Key: "existing_loan", Label: "Existing CSCJ loan repayment (₹)", Default: "0"},
			{Key: "shares", Label: "Shares (₹)", Default: "0"},
			{Key: "loan_account", Label: "Loan account (₹)", Default: "0"},
			req("net_loan", "Net loan (₹)"),
			req("salary_deduction", "Total salary deduction (₹)"),
			req("repayment_period", "Repayment period (months)"),
			{Key: "repayment_method", Label: "Repayment method", Enum: []string{"weekly", "fortnightly", "monthly"}},
			date("signature_date", "Signature date"),
			req("signature_place", "Signature place"),
		},
		Example: []Pair{
			{"form_type", "LOAN_APPLICATION"}, {"account_number", "123456789012"},
			{"applicant_name", "Rajesh Kumar Sharma"}, {"home_address", "123 MG Road, Mumbai"},
			{"previous_address", ""}, {"home_number", "022-12345678"},
			{"mobile_number", "+91 9876543210"}, {"personal_email", "rajesh@email.com"},
			{"dob", "1985-05-15"}, {"marital_status", "married"}, {"dependents", "2"},
			{"employer", "Tech Solutions"}, {"grade", "Senior Manager"},
			{"employer_address", "BKC, Mumbai"}, {"employment_type", "permanent"},
			{"service_length", "5 years 6 months"}, {"work_email", "rajesh@techsolutions.com"},
			{"work_tel", "022-98765432"}, {"loan_amount", "500000"}, {"loan_purpose", "home"},
			{"existing_loan", "0"}, {"shares", "10000"}, {"loan_account", "0"},
			{"net_loan", "490000"}, {"salary_deduction", "15000"}, {"repayment_period", "60"},
			{"repayment_method", "monthly"}, {"signature_date", "2026-01-04"},
			{"signature_place", "Mumbai"},
		},
		Notes: []string{"Do NOT collect the Office Use Only section."},
		Opening: `The user has selected LOAN APPLICATION FORM for State Bank of India.

COLLECTION STRATEGY - ASK QUESTIONS IN SMALL, EASY GROUPS:

1. BASIC: account number and full name
2. ADDRESS: complete home address with PIN code
3. PREVIOUS ADDRESS: only if they have lived at the current address for less than 3 years
4. CONTACT: mobile number (with +91), personal email, optional landline
5. DOB: date of birth (DD/MM/YYYY)
6. MARITAL: marital status and number of dependents (excluding children)
7. EMPLOYER: employer name and designation/grade
8. WORK LOCATION: employer's address and PIN code
9. EMPLOYMENT: temporary or permanent, and length of service
10. WORK CONTACT: work email and optional work phone
11. LOAN BASICS: loan amount in rupees and purpose (Home/Vehicle/Personal/Education/Business/Other)
12. REPAYMENT: repayment period in months and method (Weekly/Fortnightly/Monthly)
13. FINANCIAL 1: existing CSCJ loan repayment amount, or 0
14. FINANCIAL 2: shares amount and loan account amount (0 if none)
15. FINANCIAL 3: net loan amount and total monthly salary deduction

IMPORTANT RULES:
- Ask ONLY 1-3 related fields per question
- DO NOT list all remaining fields when user provides partial information
- Move to next question immediately after receiving current answer
- DO NOT ask for Office Use Only section

Start by greeting and asking for account number and full name only.`,
		Greeting: "Hello! I'll help you apply for a loan. To start, what is your account number and full name?",
	}
}

func Withdrawal() *Template {
	return &Template{
		ID:       "withdrawal",
		Title:    "SAVINGS BANK WITHDRAWAL FORM (STATE BANK OF INDIA)",
		FormType: "WITHDRAWAL",
		Fields: []Field{
			formTypeField("WITHDRAWAL"),
			req("branch", "Branch name"),
			date("withdrawal_date", "Withdrawal date"),
			{Key: "account_holder_name", Label: "Account holder name", Note: "full name as per bank records"},
			{Key: "account_number", Label: "Account number", FixedDigits: 14, Note: "NOT 12 digits; ask again if fewer"},
			{Key: "amount", Label: "Amount to withdraw (₹)", Note: "in numbers"},
			{Key: "amount_in_words", Label: "Amount in words", Format: "Five Thousand Only"},
			{Key: "phone_number", Label: "Phone/mobile number", FixedDigits: 10},
		},
		Example: []Pair{
			{"form_type", "WITHDRAWAL"}, {"branch", "Main Branch"},
			{"withdrawal_date", "05/01/2026"}, {"account_holder_name", "Ajith R"},
			{"account_number", "12345678901234"}, {"amount", "5000"},
			{"amount_in_words", "Five Thousand Only"}, {"phone_number", "9876543210"},
		},
		Notes: []string{
			"Withdrawal forms require 14-digit account numbers (example: 12345678901234).",
			"Do NOT collect the Office Use section.",
		},
		Opening: `The user has selected SAVINGS BANK WITHDRAWAL FORM for State Bank of India.

COLLECTION STRATEGY - Simple and Quick:

This is a simple form with only 7 fields. Ask in these groups:

1. ACCOUNT INFO: branch name, account holder name (full name as per bank records), and account number (MUST be 14 digits)
2. AMOUNT: amount to withdraw in numbers, and the amount in words (e.g., Five Thousand Only)
3. CONTACT: phone or mobile number (10 digits)
4. DATE: withdrawal date (DD/MM/YYYY), or today's date if they prefer

IMPORTANT:
- Account number MUST be exactly 14 digits for withdrawal forms
- DO NOT ask for Office Use section - that's for bank staff.

Start by greeting and asking for branch name, account holder name, and account number (14 digits) together.`,
		Greeting: "Hello! Let's fill in your withdrawal form. Please tell me your branch name, the account holder's full name, and your 14-digit account number.",
	}
}

func KYC() *Template {
	return &Template{
		ID:       "kyc",
		Title:    "KYC UPDATE FORM",
		FormType: "KYC",
		Fields: []Field{
			formTypeField("KYC"),
			{Key: "branch", Label: "Branch name", Default: "Main Branch"},
			req("customer_name", "Full name of the account holder"),
			req("account_no", "Bank account number"),
			{Key: "dob", Label: "Date of birth", Format: dateFormat},
			req("address", "Complete address"),
			req("father_husband", "Father's or husband's name"),
			req("mother_name", "Mother's name"),
			req("city", "City"),
			req("post_office", "Post office"),
			req("state", "State"),
			{Key: "pin_code", Label: "PIN code", FixedDigits: 6},
			{Key: "mobile_no", Label: "Mobile number", FixedDigits: 10},
		},
		Example: []Pair{
			{"form_type", "KYC"}, {"branch", "Main Branch"}, {"customer_name", "Ajith R"},
			{"account_no", "12345678901234"}, {"dob", "15/05/1990"},
			{"address", "123 Main Street, Trivandrum"}, {"father_husband", "Rajan K"},
			{"mother_name", "Suma R"}, {"city", "Chennai"}, {"post_office", "Karamana"},
			{"state", "Kerala"}, {"pin_code", "695002"}, {"mobile_no", "9876543210"},
		},
		Notes: []string{"This form updates an existing customer's records."},
		Opening: `The user has selected KYC UPDATE FORM for existing customers.

COLLECTION STRATEGY - Simple and Conversational:

This form updates KYC information with 12 fields. Ask in these groups:

1. BASIC INFO: branch name (or Main Branch), full name, and account number
2. PERSONAL: date of birth (DD/MM/YYYY format)
3. ADDRESS: complete address, village, post office, state, and PIN code (6 digits)
4. FAMILY: father's or husband's name, and mother's name
5. CONTACT: mobile number (10 digits)

IMPORTANT:
- If branch not mentioned, auto-fill with "Main Branch"
- Keep the conversation natural and friendly

Start by greeting warmly and asking for customer name and account number.`,
		Greeting: "Hello! I'll help you with your KYC update. What is your full name and account number?",
	}
}

func AccountClosure() *Template {
	return &Template{
		ID:       "account_closure",
		Title:    "ACCOUNT CLOSURE REQUEST (IDFC First Bank)",
		FormType: "ACCOUNT_CLOSURE",
		Fields: []Field{
			formTypeField("ACCOUNT_CLOSURE"),
			date("date", "Date of request"),
			{Key: "customer_id", Label: "Customer ID", FixedDigits: 10},
			{Key: "account_number", Label: "Account number to close", FixedDigits: 12},
			req("customer_name", "Customer full name"),
			req("purpose_closure", "Reason for closure"),
			req("beneficiary_acc", "Beneficiary account number"),
			req("holder_name", "Beneficiary account holder name"),
			{Key: "account_type", Label: "Beneficiary account type", Enum: []string{"savings", "current"}},
			req("bank_name", "Beneficiary bank name"),
			req("branch_city", "Branch name and city"),
			{Key: "ifsc_code", Label: "IFSC code", FixedLength: 11},
		},
		Example: []Pair{
			{"form_type", "ACCOUNT_CLOSURE"}, {"date", "07/01/2026"}, {"customer_id", "1234567890"},
			{"account_number", "123456789012"}, {"customer_name", "Ajith R"},
			{"purpose_closure", "Moving to another city"}, {"beneficiary_acc", "987654321012"},
			{"holder_name", "Ajith R"}, {"account_type", "savings"}, {"bank_name", "HDFC Bank"},
			{"branch_city", "Mumbai Central"}, {"ifsc_code", "HDFC0001234"},
		},
		Opening: `The user has selected ACCOUNT CLOSURE REQUEST FORM for IDFC First Bank.

COLLECTION STRATEGY - Clear and Professional:

This form closes an existing account with 11 fields. Ask in these groups:

1. ACCOUNT INFO: customer ID (10 digits), account number to be closed (12 digits), and full name
2. PURPOSE: the reason for closing this account
3. TRANSFER DETAILS: beneficiary account number, account holder name, account type (savings or current), bank name, branch name and city, IFSC code (11 characters)
4. DATE: date of request (DD/MM/YYYY), or today's date

IMPORTANT:
- Customer ID must be exactly 10 digits
- Account number must be exactly 12 digits
- IFSC code should be 11 characters
- Date auto-fills with today if not mentioned

Start by greeting professionally and asking for customer ID, account number, and customer name.`,
		Greeting: "Hello! I'll help you with your account closure request. Please share your 10-digit customer ID, the 12-digit account number to close, and your full name.",
	}
}
