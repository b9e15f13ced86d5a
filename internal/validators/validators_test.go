package validators

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPhoneValid(t *testing.T) {
	require.True(t, IsPhoneValid("(11) 98765-4321"))
	require.True(t, IsPhoneValid("+55 11 98765-4321"))
	require.False(t, IsPhoneValid("12"))
	require.False(t, IsPhoneValid("abc"))
}

func TestWhatsAppAddress(t *testing.T) {
	require.Equal(t, "whatsapp:+5511987654321", WhatsAppAddress("(11) 98765-4321"))
	require.Equal(t, "whatsapp:+14155550100", WhatsAppAddress("+1 415 555 0100"))
}

func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	require.False(t, IsEmailDomainValid("no-at-sign"))
	require.False(t, IsEmailDomainValid("trailing@"))
}

func TestIsEmailSyntaxValid(t *testing.T) {
	require.True(t, IsEmailSyntaxValid("maria.silva@email.com"))
	require.False(t, IsEmailSyntaxValid("Maria <maria@email.com>"))
	require.False(t, IsEmailSyntaxValid("maria"))
}
