package cachectl

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Advice is the direction of a cache hint: pull the file in or push it out.
type Advice int

const (
	// AdviceWillNeed asks the kernel to prefetch the file's pages.
	AdviceWillNeed Advice = unix.FADV_WILLNEED
	// AdviceDontNeed asks the kernel to drop the file's pages.
	AdviceDontNeed Advice = unix.FADV_DONTNEED
)

// Advise issues a whole-file fadvise(2) hint for cfg.Path. The hint is
// advisory: success means the request was issued, not that the kernel
// changed anything. A check run immediately afterwards may observe any
// intermediate state.
func Advise(cfg Config, advice Advice, w io.Writer) error {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.Path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", cfg.Path, err)
	}

	size := fi.Size()
	if size == 0 {
		if cfg.Verbose {
			fmt.Fprintln(w, "File is empty, no operation performed.")
		}
		return nil
	}

	if err := unix.Fadvise(int(f.Fd()), 0, size, int(advice)); err != nil {
		return fmt.Errorf("fadvise %s: %w", cfg.Path, err)
	}

	action, preposition := "Removed", "from"
	if advice == AdviceWillNeed {
		action, preposition = "Added", "to"
	}

	if cfg.Verbose {
		fmt.Fprintf(w, "%s %s %s page cache (%d bytes)\n", action, cfg.Path, preposition, size)
	} else {
		fmt.Fprintf(w, "%s %s cache: %s\n", action, preposition, cfg.Path)
	}

	return nil
}
