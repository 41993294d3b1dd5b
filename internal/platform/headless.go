package platform

import "github.com/glamberson/IronRDP/internal/clipdata"

type headlessBackend struct{}

// Headless returns a no-op backend for environments without any clipboard.
func Headless() Clipboard {
	return headlessBackend{}
}

func (headlessBackend) Name() string { return "headless (no-op)" }

func (headlessBackend) Caps() Caps { return Caps{} }

func (headlessBackend) ReadAll() ([]clipdata.Item, error) { return nil, nil }

func (headlessBackend) Write(_ []clipdata.Item) error { return nil }

func (headlessBackend) WriteText(_ string) error { return nil }

func (headlessBackend) Close() {}
