// Package recipe is the catalog of command templates. Each recipe reads its
// parameters from a session and renders them through a pure function of a
// parameter snapshot.
package recipe

import (
	"fmt"
	"strings"

	"pipesheet-cli/internal/option"
	"pipesheet-cli/internal/session"
)

const passwordLength = 20

// Recipe is a named, parameterised command template
type Recipe interface {
	ID() string
	Title() string
	SearchTags() []string
	Fields() []Field
	Render() []Command
	// Reset drops local parameters back to their defaults
	Reset()
}

// mounted is what a recipe produces each time it is (re)mounted: the way to
// snapshot its parameters and the controls editing them.
type mounted[P any] struct {
	snapshot func() P
	fields   []Field
}

type entry[P any] struct {
	id     string
	title  string
	tags   []string
	mount  func() mounted[P]
	render func(P) []Command
	state  mounted[P]
}

func newEntry[P any](id, title string, tags []string, mount func() mounted[P], render func(P) []Command) *entry[P] {
	e := &entry[P]{
		id:     id,
		title:  title,
		tags:   tags,
		mount:  mount,
		render: render,
	}
	e.state = mount()
	return e
}

func (e *entry[P]) ID() string           { return e.id }
func (e *entry[P]) Title() string        { return e.title }
func (e *entry[P]) SearchTags() []string { return e.tags }
func (e *entry[P]) Fields() []Field      { return e.state.fields }
func (e *entry[P]) Reset()               { e.state = e.mount() }

func (e *entry[P]) Render() []Command {
	return e.render(e.state.snapshot())
}

// Catalog is the ordered, fixed list of recipes of a session
type Catalog []Recipe

// NewCatalog builds every recipe bound to s
func NewCatalog(s *session.Session) (Catalog, error) {
	pfw, err := newPortForwarding(s)
	if err != nil {
		return nil, err
	}
	return Catalog{
		newFileTransfer(s),
		newClipboardTransfer(s),
		newTarTransfer(s),
		newE2EETarTransfer(s),
		newZipTransfer(s),
		pfw,
		newE2EEPortForwarding(s),
	}, nil
}

// Get finds a recipe by id (case-insensitive)
func (c Catalog) Get(id string) (Recipe, bool) {
	for _, r := range c {
		if strings.EqualFold(r.ID(), id) {
			return r, true
		}
	}
	return nil, false
}

// Reset drops the local parameters of the recipe with id back to their defaults
func (c Catalog) Reset(id string) bool {
	r, ok := c.Get(id)
	if ok {
		r.Reset()
	}
	return ok
}

// IDs lists recipe ids in catalog order
func (c Catalog) IDs() []string {
	ids := make([]string, len(c))
	for i, r := range c {
		ids[i] = r.ID()
	}
	return ids
}

func newFileTransfer(s *session.Session) Recipe {
	store := s.Store()
	return newEntry("file-transfer", "File transfer", []string{},
		func() mounted[FileTransferParams] {
			progress := session.NewParam(store, "file-transfer.progress", false)
			integrity := session.NewParam(store, "file-transfer.integrity", option.IntegrityNone)
			return mounted[FileTransferParams]{
				snapshot: func() FileTransferParams {
					return FileTransferParams{
						RelayURL:  s.RelayURL.Get(),
						Fragment:  s.Fragment.Get(),
						Progress:  progress.Get(),
						Integrity: integrity.Get(),
					}
				},
				fields: append(relayFields(s),
					toggleField("progress", "show progress (pv)", progress),
					choiceField("integrity", "integrity check", false, option.Integrities(), integrity, option.ParseIntegrity),
				),
			}
		},
		RenderFileTransfer,
	)
}

func newClipboardTransfer(s *session.Session) Recipe {
	return newEntry("clipboard-transfer", "Copy & Paste (macOS)", []string{"clipboard"},
		func() mounted[ClipboardParams] {
			return mounted[ClipboardParams]{
				snapshot: func() ClipboardParams {
					return ClipboardParams{RelayURL: s.RelayURL.Get(), Fragment: s.Fragment.Get()}
				},
				fields: relayFields(s),
			}
		},
		RenderClipboardTransfer,
	)
}

func newTarTransfer(s *session.Session) Recipe {
	store := s.Store()
	return newEntry("tar-dir-transfer", "Directory transfer (tar)", []string{"folder", "tar.gz", "gzip"},
		func() mounted[TarParams] {
			format := session.NewParam(store, "tar-dir-transfer.format", option.TarPlain)
			return mounted[TarParams]{
				snapshot: func() TarParams {
					return TarParams{RelayURL: s.RelayURL.Get(), Fragment: s.Fragment.Get(), Format: format.Get()}
				},
				fields: append(relayFields(s),
					choiceField("format", "tar/tar.gz", false, option.TarFormats(), format, option.ParseTarFormat),
				),
			}
		},
		RenderTarTransfer,
	)
}

func newE2EETarTransfer(s *session.Session) Recipe {
	store := s.Store()
	return newEntry("e2ee-tar-dir-transfer", "Directory transfer (tar) (E2EE)",
		[]string{"folder", "tar.gz", "gzip", "end-to-end encryption"},
		func() mounted[E2EETarParams] {
			format := session.NewParam(store, "e2ee-tar-dir-transfer.format", option.TarPlain)
			cipher := session.NewParam(store, "e2ee-tar-dir-transfer.cipher", option.CipherOpenSSL)
			algorithm := session.NewParam(store, "e2ee-tar-dir-transfer.algorithm", option.DefaultOpenSSLAlgorithm)
			return mounted[E2EETarParams]{
				snapshot: func() E2EETarParams {
					return E2EETarParams{
						TarParams: TarParams{RelayURL: s.RelayURL.Get(), Fragment: s.Fragment.Get(), Format: format.Get()},
						Cipher:    cipher.Get(),
						Algorithm: algorithm.Get(),
					}
				},
				fields: append(relayFields(s),
					choiceField("format", "tar/tar.gz", false, option.TarFormats(), format, option.ParseTarFormat),
					choiceField("cipher", "E2E encryption", false, option.Ciphers(), cipher, option.ParseCipher),
					textField("algorithm", "openssl cipher", false, algorithm),
				),
			}
		},
		RenderE2EETarTransfer,
	)
}

func newZipTransfer(s *session.Session) Recipe {
	return newEntry("zip-dir-transfer", "Directory transfer (zip)", []string{"folder"},
		func() mounted[ZipParams] {
			return mounted[ZipParams]{
				snapshot: func() ZipParams {
					return ZipParams{RelayURL: s.RelayURL.Get(), Fragment: s.Fragment.Get()}
				},
				fields: relayFields(s),
			}
		},
		RenderZipTransfer,
	)
}

func newPortForwarding(s *session.Session) (Recipe, error) {
	store := s.Store()
	// Drawn once per session: it is the default a remount returns to.
	password, err := session.RandomPassword(passwordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate openssl password: %w", err)
	}
	return newEntry("port-forwarding", "Port forwarding", []string{"tunnel"},
		func() mounted[PortForwardParams] {
			encryption := session.NewParam(store, "port-forwarding.encryption", option.StreamNone)
			pass := session.NewParam(store, "port-forwarding.password", password)
			return mounted[PortForwardParams]{
				snapshot: func() PortForwardParams {
					return PortForwardParams{
						RelayURL:   s.RelayURL.Get(),
						Path1:      s.Path1.Get(),
						Path2:      s.Path2.Get(),
						ServerPort: s.ServerPort.Get(),
						ClientPort: s.ClientPort.Get(),
						Listener:   s.Listener.Get(),
						Encryption: encryption.Get(),
						Password:   pass.Get(),
					}
				},
				fields: append(tunnelFields(s),
					choiceField("encryption", "E2E encryption", false, option.StreamCiphers(), encryption, option.ParseStreamCipher),
					secretField("password", "openssl pass", pass),
				),
			}
		},
		RenderPortForwarding,
	), nil
}

func newE2EEPortForwarding(s *session.Session) Recipe {
	return newEntry("e2ee-port-forwarding", "Port forwarding (E2EE inputting pass)",
		[]string{"tunnel", "e2ee", "end-to-end", "encryption"},
		func() mounted[E2EEPortForwardParams] {
			return mounted[E2EEPortForwardParams]{
				snapshot: func() E2EEPortForwardParams {
					return E2EEPortForwardParams{
						RelayURL:   s.RelayURL.Get(),
						Path1:      s.Path1.Get(),
						Path2:      s.Path2.Get(),
						ServerPort: s.ServerPort.Get(),
						ClientPort: s.ClientPort.Get(),
						Listener:   s.Listener.Get(),
					}
				},
				fields: tunnelFields(s),
			}
		},
		RenderE2EEPortForwarding,
	)
}
