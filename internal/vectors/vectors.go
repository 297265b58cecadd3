// Package vectors runs and generates CSV test vectors of the form
// "a,b,expected" with decimal operands, one operation per file.
package vectors

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/limbcalc/internal/bigint"
	"github.com/agbru/limbcalc/internal/nat"
	"github.com/agbru/limbcalc/internal/verify"
)

// Vector is one line of a vector file.
type Vector struct {
	Line     int
	A, B     string
	Expected string
}

// Failure describes a vector the engine got wrong.
type Failure struct {
	Vector
	Got string
	Err error
}

// Report summarizes a run.
type Report struct {
	Op       verify.Op
	Total    int
	Passed   int
	Failures []Failure
}

// OK reports whether every vector passed.
func (r Report) OK() bool { return r.Passed == r.Total }

// Read parses vectors from r. Blank lines and lines starting with '#' are
// skipped; every other line must have exactly three fields.
func Read(r io.Reader) ([]Vector, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var out []Vector
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("vectors: %w", err)
		}
		line, _ := cr.FieldPos(0)
		out = append(out, Vector{
			Line:     line,
			A:        strings.TrimSpace(rec[0]),
			B:        strings.TrimSpace(rec[1]),
			Expected: strings.TrimSpace(rec[2]),
		})
	}
}

// OpFromFileName infers the operation from a name such as "mul_test.csv".
func OpFromFileName(path string) (verify.Op, error) {
	base := filepath.Base(path)
	name, _, _ := strings.Cut(base, "_")
	name = strings.TrimSuffix(name, filepath.Ext(name))
	op, err := verify.ParseOp(name)
	if err != nil {
		return "", fmt.Errorf("vectors: cannot infer operation from %q", base)
	}
	return op, nil
}

// Run checks every vector against e, using up to GOMAXPROCS workers.
// Failures are ordered by line.
func Run(ctx context.Context, e *nat.Engine, op verify.Op, vs []Vector) (Report, error) {
	rep := Report{Op: op, Total: len(vs)}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, v := range vs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			got, err := eval(e, op, v)
			mu.Lock()
			defer mu.Unlock()
			if err == nil && got == v.Expected {
				rep.Passed++
				return nil
			}
			rep.Failures = append(rep.Failures, Failure{Vector: v, Got: got, Err: err})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rep, err
	}
	sort.Slice(rep.Failures, func(i, j int) bool { return rep.Failures[i].Line < rep.Failures[j].Line })
	return rep, nil
}

func eval(e *nat.Engine, op verify.Op, v Vector) (string, error) {
	a, err := bigint.Parse(e, v.A, 10)
	if err != nil {
		return "", fmt.Errorf("operand a: %w", err)
	}
	b, err := bigint.Parse(e, v.B, 10)
	if err != nil {
		return "", fmt.Errorf("operand b: %w", err)
	}
	z, err := verify.Apply(op, a, b)
	if err != nil {
		return "", err
	}
	return z.String(), nil
}

// RunFile reads path and runs it with the operation named by its file name.
func RunFile(ctx context.Context, e *nat.Engine, path string) (Report, error) {
	op, err := OpFromFileName(path)
	if err != nil {
		return Report{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Report{Op: op}, err
	}
	defer f.Close()
	vs, err := Read(f)
	if err != nil {
		return Report{Op: op}, fmt.Errorf("%s: %w", path, err)
	}
	return Run(ctx, e, op, vs)
}
