package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"copo_backend/internals/observability"
)

// LatexRenderer typesets with pdflatex and rasterises page one with pdftoppm.
type LatexRenderer struct {
	PdflatexBin string
	PdftoppmBin string
	WorkRoot    string
	Timeout     time.Duration
	MaxWidth    int
	Log         *zap.Logger
}

func (r LatexRenderer) Render(ctx context.Context, in PaperInput) (PreviewImage, error) {
	start := time.Now()
	defer func() { observability.ObserveRender(time.Since(start)) }()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	src, err := renderLatex(in)
	if err != nil {
		return PreviewImage{}, fmt.Errorf("fill template: %w", err)
	}

	if err := os.MkdirAll(r.WorkRoot, 0o755); err != nil {
		return PreviewImage{}, fmt.Errorf("work root: %w", err)
	}
	dir, err := os.MkdirTemp(r.WorkRoot, "paper-"+uuid.NewString()[:8]+"-")
	if err != nil {
		return PreviewImage{}, fmt.Errorf("work dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil && r.Log != nil {
			r.Log.Warn("remove render dir", zap.String("dir", dir), zap.Error(err))
		}
	}()

	tex := filepath.Join(dir, "paper.tex")
	if err := os.WriteFile(tex, src, 0o600); err != nil {
		return PreviewImage{}, fmt.Errorf("write tex: %w", err)
	}

	if err := r.run(ctx, dir, r.PdflatexBin,
		"-interaction=nonstopmode", "-halt-on-error", "-output-directory", dir, tex); err != nil {
		return PreviewImage{}, err
	}
	if err := r.run(ctx, dir, r.PdftoppmBin,
		"-png", "-f", "1", "-l", "1", "-r", "150", "-singlefile",
		filepath.Join(dir, "paper.pdf"), filepath.Join(dir, "page")); err != nil {
		return PreviewImage{}, err
	}

	raw, err := os.ReadFile(filepath.Join(dir, "page.png"))
	if err != nil {
		return PreviewImage{}, fmt.Errorf("read page: %w", err)
	}
	return encodePage(raw, r.MaxWidth, in.format())
}

// run executes bin in dir; the error carries the tail of its output.
func (r LatexRenderer) run(ctx context.Context, dir, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", filepath.Base(bin), ctx.Err())
		}
		return fmt.Errorf("%s: %v: %s", filepath.Base(bin), err, tail(out.Bytes(), 600))
	}
	return nil
}

func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(bytes.TrimSpace(b))
}
