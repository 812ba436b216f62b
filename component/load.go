package component

import (
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// NewDocument returns etree document configured the way templates are read:
// declared non UTF-8 encodings are honoured and input is not strictly
// validated.
func NewDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		ValidateInput: false,
		Permissive:    true,
	}
	return doc
}

// Load reads template markup and builds component tree from it.
func Load(r io.Reader, log *zap.Logger) (*etree.Document, *Node, error) {
	if log == nil {
		log = zap.NewNop()
	}

	doc := NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, nil, fmt.Errorf("unable to read template: %w", err)
	}

	root, err := Parse(doc, log)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to parse template: %w", err)
	}
	return doc, root, nil
}

// LoadFile is Load for a file on disk.
func LoadFile(path string, log *zap.Logger) (*etree.Document, *Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open template: %w", err)
	}
	defer f.Close()

	return Load(f, log)
}
