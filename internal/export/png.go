package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/gleam/internal/intro"
)

type PNGWriter interface {
	SavePNG(path string) error
}

// PNGSequence is an intro.Observer that saves every frame as
// frame_00001.png, frame_00002.png, ... in Dir. The first error stops
// further writes.
type PNGSequence struct {
	Dir string

	src   PNGWriter
	count int
	err   error
}

func NewPNGSequence(src PNGWriter, dir string) (*PNGSequence, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &PNGSequence{Dir: dir, src: src}, nil
}

func (p *PNGSequence) OnFrame(f intro.Frame) {
	if p.err != nil {
		return
	}
	path := filepath.Join(p.Dir, fmt.Sprintf("frame_%05d.png", f.Seq))
	if err := p.src.SavePNG(path); err != nil {
		p.err = fmt.Errorf("frame %d: %w", f.Seq, err)
		return
	}
	p.count++
}

func (p *PNGSequence) Count() int { return p.count }
func (p *PNGSequence) Err() error { return p.err }
