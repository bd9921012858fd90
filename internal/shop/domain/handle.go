package domain

import "fmt"

const (
	// DiscriminatorSpace is the number of discriminators per username (0000-9999).
	DiscriminatorSpace = 10000
)

// FormatHandle renders a username with its zero padded discriminator.
func FormatHandle(username string, discriminator int) string {
	return fmt.Sprintf("%s#%04d", username, discriminator)
}
