package validators

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)

// NormalizePhone strips the punctuation people type around phone numbers.
func NormalizePhone(phone string) string {
	r := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	return r.Replace(strings.TrimSpace(phone))
}

func IsPhoneValid(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

// WhatsAppAddress turns a phone into a Twilio WhatsApp address, assuming
// Brazilian numbers when no country code is present.
func WhatsAppAddress(phone string) string {
	p := NormalizePhone(phone)
	if !strings.HasPrefix(p, "+") {
		p = "+55" + strings.TrimPrefix(p, "0")
	}
	return "whatsapp:" + p
}
