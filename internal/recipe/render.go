package recipe

import (
	"fmt"

	"pipesheet-cli/internal/option"
)

// Command is one labelled, ready-to-copy shell command
type Command struct {
	Label string `json:"label" yaml:"label"`
	Text  string `json:"command" yaml:"command"`
}

const (
	labelSender     = "Sender"
	labelReceiver   = "Receiver"
	labelServerHost = "Server host"
	labelClientHost = "Client host"
)

// FileTransferParams is the input of the file transfer recipe
type FileTransferParams struct {
	RelayURL  string
	Fragment  string
	Progress  bool
	Integrity option.Integrity
}

// RenderFileTransfer sends a single file named myfile
func RenderFileTransfer(p FileTransferParams) []Command {
	url := JoinURL(p.RelayURL, "myfile"+p.Fragment)
	integrity := p.Integrity
	if integrity == "" {
		integrity = option.IntegrityNone
	}
	check := integrity.Command("myfile")

	sender := fmt.Sprintf("curl -T myfile %s", url)
	receiver := fmt.Sprintf("curl %s > myfile", url)
	if p.Progress {
		sender = Pipeline("pv myfile", "curl -T - "+url)
		receiver = Pipeline("curl -sS "+url, "pv > myfile")
	}
	return []Command{
		{Label: labelSender, Text: Lines(check, sender)},
		{Label: labelReceiver, Text: Lines(receiver, check)},
	}
}

// ClipboardParams is the input of the macOS clipboard recipe
type ClipboardParams struct {
	RelayURL string
	Fragment string
}

// RenderClipboardTransfer moves the macOS pasteboard between machines
func RenderClipboardTransfer(p ClipboardParams) []Command {
	url := JoinURL(p.RelayURL, "clip"+p.Fragment)
	return []Command{
		{Label: labelSender, Text: Pipeline("pbpaste", "curl -T - "+url)},
		{Label: labelReceiver, Text: Pipeline("curl "+url, "pbcopy")},
	}
}

// TarParams is the input of the tar directory recipe
type TarParams struct {
	RelayURL string
	Fragment string
	Format   option.TarFormat
}

func (p TarParams) url() string {
	return JoinURL(p.RelayURL, "mydir"+p.Fragment+p.Format.Extension())
}

// RenderTarTransfer archives the current directory with tar
func RenderTarTransfer(p TarParams) []Command {
	url := p.url()
	return []Command{
		{Label: labelSender, Text: Pipeline(p.Format.CreateCommand(), "curl -T - "+url)},
		{Label: labelReceiver, Text: Pipeline("curl "+url, "tar x")},
	}
}

// E2EETarParams is the input of the encrypted tar directory recipe
type E2EETarParams struct {
	TarParams
	Cipher    option.Cipher
	Algorithm string
}

// RenderE2EETarTransfer archives the current directory and encrypts it before upload
func RenderE2EETarTransfer(p E2EETarParams) []Command {
	url := p.url()
	algorithm := p.Algorithm
	if algorithm == "" {
		algorithm = option.DefaultOpenSSLAlgorithm
	}
	prepend := p.Cipher.Prepend()
	sender := prepend + Pipeline(
		p.Format.CreateCommand(),
		p.Cipher.Encrypt(algorithm),
		"curl -T - "+url,
	)
	receiver := prepend + Pipeline(
		"curl "+url,
		p.Cipher.Decrypt(algorithm),
		"tar x",
	)
	return []Command{
		{Label: labelSender, Text: sender},
		{Label: labelReceiver, Text: receiver},
	}
}

// ZipParams is the input of the zip directory recipe
type ZipParams struct {
	RelayURL string
	Fragment string
}

// RenderZipTransfer archives the current directory with zip. The receiver
// keeps the archive: zip cannot be extracted from a pipe.
func RenderZipTransfer(p ZipParams) []Command {
	url := JoinURL(p.RelayURL, "mydir"+p.Fragment+".zip")
	return []Command{
		{Label: labelSender, Text: Pipeline("zip -r - .", "curl -T - "+url)},
		{Label: labelReceiver, Text: fmt.Sprintf("curl %s > mydir.zip", url)},
	}
}

// PortForwardParams is the input of the port forwarding recipe
type PortForwardParams struct {
	RelayURL   string
	Path1      string
	Path2      string
	ServerPort string
	ClientPort string
	Listener   option.Listener
	Encryption option.StreamCipher
	Password   string
}

// RenderPortForwarding exposes ServerPort of the server host on ClientPort of
// the client host. Path1 carries client-to-server bytes, Path2 the reverse.
func RenderPortForwarding(p PortForwardParams) []Command {
	enc := p.Encryption
	if enc == "" {
		enc = option.StreamNone
	}
	path1 := JoinURL(p.RelayURL, p.Path1)
	path2 := JoinURL(p.RelayURL, p.Path2)

	server := Pipeline(stages(
		[]string{"curl -sSN " + path1},
		enc.Decrypt(p.Password),
		[]string{"nc localhost " + p.ServerPort},
		enc.Encrypt(p.Password),
		[]string{"curl -sSNT - " + path2},
	)...)
	client := Pipeline(stages(
		[]string{"curl -sSN " + path2},
		enc.Decrypt(p.Password),
		[]string{p.Listener.ListenCommand(p.ClientPort)},
		enc.Encrypt(p.Password),
		[]string{"curl -sSNT - " + path1},
	)...)
	return []Command{
		{Label: labelServerHost, Text: server},
		{Label: labelClientHost, Text: client},
	}
}

// E2EEPortForwardParams is the input of the passphrase-prompting tunnel recipe
type E2EEPortForwardParams struct {
	RelayURL   string
	Path1      string
	Path2      string
	ServerPort string
	ClientPort string
	Listener   option.Listener
}

const (
	readPass  = `read -p "password: " -s pass && `
	unsetPass = "; unset pass"
	passVar   = "$pass"
)

// RenderE2EEPortForwarding is RenderPortForwarding with openssl keyed by a
// passphrase typed at run time, so it never appears in the command.
func RenderE2EEPortForwarding(p E2EEPortForwardParams) []Command {
	path1 := JoinURL(p.RelayURL, p.Path1)
	path2 := JoinURL(p.RelayURL, p.Path2)
	encrypt := option.OpenSSLStream(false, passVar)
	decrypt := option.OpenSSLStream(true, passVar)

	server := Pipeline(
		readPass+"curl -sSN "+path1,
		decrypt,
		"nc localhost "+p.ServerPort,
		encrypt,
		"curl -sSNT - "+path2,
	) + unsetPass
	client := Pipeline(
		readPass+"curl -sSN "+path2,
		decrypt,
		p.Listener.ListenCommand(p.ClientPort),
		encrypt,
		"curl -sSNT - "+path1,
	) + unsetPass
	return []Command{
		{Label: labelServerHost, Text: server},
		{Label: labelClientHost, Text: client},
	}
}
