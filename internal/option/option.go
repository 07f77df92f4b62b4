// Package option holds the closed sets of choices a recipe can be rendered
// with, and the shell fragment each choice contributes.
//
// Values reaching an encoder are always members of the set: the controls that
// set them go through Parse*. An unknown value therefore panics.
package option

import (
	"fmt"
	"strings"
)

// Choice is one selectable value with its display label
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

func unknown(kind string, v any) string {
	return fmt.Sprintf("option: unknown %s %q", kind, v)
}

func parse[T ~string](kind, s string, all []T) (T, error) {
	for _, v := range all {
		if string(v) == s {
			return v, nil
		}
	}
	names := make([]string, len(all))
	for i, v := range all {
		names[i] = string(v)
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q (must be one of: %s)", kind, s, strings.Join(names, ", "))
}

// Listener is the program accepting forwarded bytes on the client host
type Listener string

const (
	ListenerNcL   Listener = "nc -l"
	ListenerNcLp  Listener = "nc -lp"
	ListenerSocat Listener = "socat"
)

// DefaultListener is GNU netcat. BSD nc rejects -lp with an error, GNU nc
// accepts -l without one.
const DefaultListener = ListenerNcLp

// Listeners returns the selectable listeners in display order
func Listeners() []Choice {
	return []Choice{
		{Value: string(ListenerNcLp), Label: "GNU: nc -lp"},
		{Value: string(ListenerNcL), Label: "BSD: nc -l"},
		{Value: string(ListenerSocat), Label: "socat"},
	}
}

// ParseListener validates s against the listener set
func ParseListener(s string) (Listener, error) {
	return parse("listener", s, []Listener{ListenerNcL, ListenerNcLp, ListenerSocat})
}

// ListenCommand returns the stage listening on port
func (l Listener) ListenCommand(port string) string {
	switch l {
	case ListenerNcL, ListenerNcLp:
		return fmt.Sprintf("%s %s", l, port)
	case ListenerSocat:
		return fmt.Sprintf("socat TCP-LISTEN:%s -", port)
	}
	panic(unknown("listener", l))
}

// Next cycles through the listeners in display order
func (l Listener) Next() Listener {
	switch l {
	case ListenerNcLp:
		return ListenerNcL
	case ListenerNcL:
		return ListenerSocat
	case ListenerSocat:
		return ListenerNcLp
	}
	panic(unknown("listener", l))
}

// Cipher is the tool used for end-to-end encryption of a one-shot transfer
type Cipher string

const (
	CipherOpenSSL Cipher = "openssl"
	CipherGPG     Cipher = "gpg"
)

// DefaultOpenSSLAlgorithm is the openssl cipher used when none is chosen
const DefaultOpenSSLAlgorithm = "aes-256-cbc"

// Ciphers returns the selectable ciphers
func Ciphers() []Choice {
	return []Choice{
		{Value: string(CipherOpenSSL), Label: "openssl"},
		{Value: string(CipherGPG), Label: "gpg"},
	}
}

// ParseCipher validates s against the cipher set
func ParseCipher(s string) (Cipher, error) {
	return parse("cipher", s, []Cipher{CipherOpenSSL, CipherGPG})
}

// Encrypt returns the encrypting stage. algorithm is only used by openssl.
func (c Cipher) Encrypt(algorithm string) string {
	switch c {
	case CipherOpenSSL:
		return fmt.Sprintf("openssl %s -pbkdf2", algorithm)
	case CipherGPG:
		return "gpg -c"
	}
	panic(unknown("cipher", c))
}

// Decrypt returns the stage inverting Encrypt for the same algorithm
func (c Cipher) Decrypt(algorithm string) string {
	switch c {
	case CipherOpenSSL:
		return fmt.Sprintf("openssl %s -d -pbkdf2", algorithm)
	case CipherGPG:
		return "gpg -d"
	}
	panic(unknown("cipher", c))
}

// Prepend returns the setup line gpg needs to prompt for a passphrase
func (c Cipher) Prepend() string {
	switch c {
	case CipherOpenSSL:
		return ""
	case CipherGPG:
		return "export GPG_TTY=$(tty);\n"
	}
	panic(unknown("cipher", c))
}

// StreamCipher is the optional encryption applied to a long-lived tunnel
type StreamCipher string

const (
	StreamNone    StreamCipher = "none"
	StreamOpenSSL StreamCipher = "openssl"
)

// StreamAlgorithm must be a stream mode so each byte is flushed as it arrives
const StreamAlgorithm = "aes-256-ctr"

// StreamCiphers returns the selectable tunnel encryptions
func StreamCiphers() []Choice {
	return []Choice{
		{Value: string(StreamNone), Label: "none"},
		{Value: string(StreamOpenSSL), Label: "openssl"},
	}
}

// ParseStreamCipher validates s against the tunnel encryption set
func ParseStreamCipher(s string) (StreamCipher, error) {
	return parse("encryption", s, []StreamCipher{StreamNone, StreamOpenSSL})
}

// Encrypt returns zero or one encrypting stages keyed by pass
func (c StreamCipher) Encrypt(pass string) []string {
	switch c {
	case StreamNone:
		return nil
	case StreamOpenSSL:
		return []string{OpenSSLStream(false, pass)}
	}
	panic(unknown("encryption", c))
}

// Decrypt returns zero or one decrypting stages keyed by pass
func (c StreamCipher) Decrypt(pass string) []string {
	switch c {
	case StreamNone:
		return nil
	case StreamOpenSSL:
		return []string{OpenSSLStream(true, pass)}
	}
	panic(unknown("encryption", c))
}

// OpenSSLStream returns an unbuffered openssl stage. pass is interpolated
// verbatim, so "$pass" refers to a shell variable.
func OpenSSLStream(decrypt bool, pass string) string {
	mode := ""
	if decrypt {
		mode = " -d"
	}
	return fmt.Sprintf(`stdbuf -i0 -o0 openssl %s%s -pass "pass:%s" -bufsize 1 -pbkdf2`, StreamAlgorithm, mode, pass)
}

// TarFormat selects plain or gzipped tar archives
type TarFormat string

const (
	TarPlain TarFormat = "tar"
	TarGzip  TarFormat = "tar.gz"
)

// TarFormats returns the selectable archive formats
func TarFormats() []Choice {
	return []Choice{
		{Value: string(TarPlain), Label: "tar"},
		{Value: string(TarGzip), Label: "tar.gz"},
	}
}

// ParseTarFormat validates s against the archive formats
func ParseTarFormat(s string) (TarFormat, error) {
	return parse("tar format", s, []TarFormat{TarPlain, TarGzip})
}

// CreateCommand returns the archiving stage for the current directory
func (f TarFormat) CreateCommand() string {
	switch f {
	case TarPlain:
		return "tar c ."
	case TarGzip:
		return "tar cz ."
	}
	panic(unknown("tar format", f))
}

// Extension returns the file extension used in the relay path
func (f TarFormat) Extension() string {
	switch f {
	case TarPlain, TarGzip:
		return "." + string(f)
	}
	panic(unknown("tar format", f))
}

// Integrity selects the checksum printed on both sides of a file transfer
type Integrity string

const (
	IntegrityNone   Integrity = "none"
	IntegritySHA256 Integrity = "sha256"
	IntegrityMD5    Integrity = "md5"
)

// Integrities returns the selectable checksum tools
func Integrities() []Choice {
	return []Choice{
		{Value: string(IntegrityNone), Label: "none"},
		{Value: string(IntegritySHA256), Label: "sha256sum"},
		{Value: string(IntegrityMD5), Label: "md5sum"},
	}
}

// ParseIntegrity validates s against the checksum set
func ParseIntegrity(s string) (Integrity, error) {
	return parse("integrity check", s, []Integrity{IntegrityNone, IntegritySHA256, IntegrityMD5})
}

// Command returns the checksum line for file, or "" when disabled
func (i Integrity) Command(file string) string {
	switch i {
	case IntegrityNone:
		return ""
	case IntegritySHA256:
		return "sha256sum " + file
	case IntegrityMD5:
		return "md5sum " + file
	}
	panic(unknown("integrity check", i))
}
