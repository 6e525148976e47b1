package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type CoverageDigestMailData struct {
	FullName string                `json:"fullName"`
	Date     string                `json:"date"`
	Entries  []CoverageDigestEntry `json:"entries"`
}

type CoverageDigestEntry struct {
	PropertyName string   `json:"propertyName"`
	ServiceName  string   `json:"serviceName"`
	GapSpans     []string `json:"gapSpans"`
	Conflicts    []string `json:"conflicts"`
}
