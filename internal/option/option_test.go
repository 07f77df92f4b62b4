package option

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestParseListener(t *testing.T) {
	tests := []struct {
		in      string
		want    Listener
		wantErr bool
	}{
		{in: "nc -lp", want: ListenerNcLp},
		{in: "nc -l", want: ListenerNcL},
		{in: "socat", want: ListenerSocat},
		{in: "ncat", wantErr: true},
		{in: "", wantErr: true},
		{in: "NC -L", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseListener(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseListener(%q) expected error", tt.in)
				}
				if !strings.Contains(err.Error(), "nc -l, nc -lp, socat") {
					t.Errorf("error should list valid listeners, got %q", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseListener(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseListener(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestListener_ListenCommand(t *testing.T) {
	tests := []struct {
		listener Listener
		want     string
	}{
		{ListenerNcLp, "nc -lp 1022"},
		{ListenerNcL, "nc -l 1022"},
		{ListenerSocat, "socat TCP-LISTEN:1022 -"},
	}

	for _, tt := range tests {
		if got := tt.listener.ListenCommand("1022"); got != tt.want {
			t.Errorf("%q.ListenCommand() = %q, want %q", tt.listener, got, tt.want)
		}
	}
}

func TestListener_NextCyclesDisplayOrder(t *testing.T) {
	l := DefaultListener
	var seen []string
	for range Listeners() {
		seen = append(seen, string(l))
		l = l.Next()
	}
	if l != DefaultListener {
		t.Errorf("Next() should return to %q after a full cycle, got %q", DefaultListener, l)
	}
	for i, c := range Listeners() {
		if seen[i] != c.Value {
			t.Errorf("cycle[%d] = %q, want %q", i, seen[i], c.Value)
		}
	}
}

func TestUnknownValuePanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"listener", func() { Listener("ncat").ListenCommand("1") }},
		{"listener next", func() { Listener("").Next() }},
		{"cipher", func() { Cipher("age").Encrypt("x") }},
		{"stream", func() { StreamCipher("chacha").Decrypt("x") }},
		{"tar", func() { TarFormat("tar.xz").CreateCommand() }},
		{"integrity", func() { Integrity("crc32").Command("f") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatalf("expected panic")
				}
				if !strings.HasPrefix(r.(string), "option: unknown") {
					t.Errorf("unexpected panic value %v", r)
				}
			}()
			tt.fn()
		})
	}
}

func TestCipher(t *testing.T) {
	tests := []struct {
		cipher      Cipher
		wantEncrypt string
		wantDecrypt string
		wantPrepend string
	}{
		{CipherOpenSSL, "openssl aes-256-cbc -pbkdf2", "openssl aes-256-cbc -d -pbkdf2", ""},
		{CipherGPG, "gpg -c", "gpg -d", "export GPG_TTY=$(tty);\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.cipher), func(t *testing.T) {
			if got := tt.cipher.Encrypt(DefaultOpenSSLAlgorithm); got != tt.wantEncrypt {
				t.Errorf("Encrypt() = %q, want %q", got, tt.wantEncrypt)
			}
			if got := tt.cipher.Decrypt(DefaultOpenSSLAlgorithm); got != tt.wantDecrypt {
				t.Errorf("Decrypt() = %q, want %q", got, tt.wantDecrypt)
			}
			if got := tt.cipher.Prepend(); got != tt.wantPrepend {
				t.Errorf("Prepend() = %q, want %q", got, tt.wantPrepend)
			}
		})
	}
}

func TestCipherPairing(t *testing.T) {
	properties := gopter.NewProperties(nil)

	algorithm := gen.OneConstOf("aes-256-cbc", "aes-128-cbc", "aes-256-ctr", "chacha20", "camellia-256-cbc")

	properties.Property("openssl decrypt uses the encrypt algorithm", prop.ForAll(
		func(alg string) bool {
			enc := strings.Fields(CipherOpenSSL.Encrypt(alg))
			dec := strings.Fields(CipherOpenSSL.Decrypt(alg))
			return enc[0] == dec[0] && enc[1] == alg && dec[1] == alg
		},
		algorithm,
	))

	properties.Property("gpg pairs -c with -d regardless of algorithm", prop.ForAll(
		func(alg string) bool {
			return CipherGPG.Encrypt(alg) == "gpg -c" && CipherGPG.Decrypt(alg) == "gpg -d"
		},
		algorithm,
	))

	properties.Property("stream encrypt and decrypt share algorithm and pass", prop.ForAll(
		func(pass string) bool {
			enc := StreamOpenSSL.Encrypt(pass)
			dec := StreamOpenSSL.Decrypt(pass)
			if len(enc) != 1 || len(dec) != 1 {
				return false
			}
			pair := `-pass "pass:` + pass + `"`
			return strings.Contains(enc[0], StreamAlgorithm) && strings.Contains(dec[0], StreamAlgorithm) &&
				strings.Contains(enc[0], pair) && strings.Contains(dec[0], pair) &&
				strings.Replace(dec[0], " -d", "", 1) == enc[0]
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestStreamNoneAddsNoStage(t *testing.T) {
	if got := StreamNone.Encrypt("x"); len(got) != 0 {
		t.Errorf("StreamNone.Encrypt() = %v, want no stage", got)
	}
	if got := StreamNone.Decrypt("x"); len(got) != 0 {
		t.Errorf("StreamNone.Decrypt() = %v, want no stage", got)
	}
}

func TestTarFormat(t *testing.T) {
	if got := TarPlain.CreateCommand(); got != "tar c ." {
		t.Errorf("TarPlain.CreateCommand() = %q", got)
	}
	if got := TarGzip.CreateCommand(); got != "tar cz ." {
		t.Errorf("TarGzip.CreateCommand() = %q", got)
	}
	if got := TarGzip.Extension(); got != ".tar.gz" {
		t.Errorf("TarGzip.Extension() = %q", got)
	}
}

func TestIntegrity(t *testing.T) {
	tests := map[Integrity]string{
		IntegrityNone:   "",
		IntegritySHA256: "sha256sum myfile",
		IntegrityMD5:    "md5sum myfile",
	}
	for i, want := range tests {
		if got := i.Command("myfile"); got != want {
			t.Errorf("%q.Command() = %q, want %q", i, got, want)
		}
	}
}

func TestChoicesParse(t *testing.T) {
	sets := []struct {
		name    string
		choices []Choice
		parse   func(string) error
	}{
		{"listener", Listeners(), func(s string) error { _, err := ParseListener(s); return err }},
		{"cipher", Ciphers(), func(s string) error { _, err := ParseCipher(s); return err }},
		{"stream", StreamCiphers(), func(s string) error { _, err := ParseStreamCipher(s); return err }},
		{"tar", TarFormats(), func(s string) error { _, err := ParseTarFormat(s); return err }},
		{"integrity", Integrities(), func(s string) error { _, err := ParseIntegrity(s); return err }},
	}

	for _, set := range sets {
		for _, c := range set.choices {
			if err := set.parse(c.Value); err != nil {
				t.Errorf("%s choice %q does not parse: %v", set.name, c.Value, err)
			}
		}
	}
}
