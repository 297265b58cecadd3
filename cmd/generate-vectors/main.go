// Command generate-vectors writes one CSV vector file per operation, with
// expected values computed by math/big. The files are read back by
// "limbcalc vectors run".
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/agbru/limbcalc/internal/vectors"
	"github.com/agbru/limbcalc/internal/verify"
)

func main() {
	fs := pflag.NewFlagSet("generate-vectors", pflag.ExitOnError)
	dir := fs.StringP("dir", "d", "testdata", "output directory")
	count := fs.Int("count", 200, "vectors per operation")
	digits := fs.Int("digits", 120, "operand magnitude bound in decimal digits")
	seed := fs.Uint64("seed", 1, "random seed")
	_ = fs.Parse(os.Args[1:])

	paths, err := writeAll(*dir, vectors.GenerateOptions{Count: *count, Digits: *digits, Seed: *seed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate-vectors: %v\n", err)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}

// writeAll writes <dir>/<op>_test.csv for every operation. Each operation
// draws from its own seed so that files are independent of one another.
func writeAll(dir string, opts vectors.GenerateOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(verify.Ops))
	for i, op := range verify.Ops {
		path := filepath.Join(dir, string(op)+"_test.csv")
		o := opts
		o.Seed = opts.Seed + uint64(i)
		if err := writeFile(path, op, o); err != nil {
			return paths, fmt.Errorf("%s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, op verify.Op, opts vectors.GenerateOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := fmt.Fprintf(f, "# %s vectors, %d digits, seed %d\n", op, opts.Digits, opts.Seed); err != nil {
		return err
	}
	return vectors.Generate(f, op, opts)
}
