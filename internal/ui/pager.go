package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// PagerOps shows long read-only content (payroll run detail, help) in the
// ov pager, handing the terminal over and back.
type PagerOps struct {
	program *tea.Program
}

// NewPagerOps creates a pager bound to the running program
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program}
}

// SetProgram binds the pager to the Bubble Tea program once it exists
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowInPager displays content in ov, blocking until the user quits it
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Hand the terminal over to ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// ov needs a moment to finish tearing down its screen
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Writing the pager content back on exit would clobber our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
