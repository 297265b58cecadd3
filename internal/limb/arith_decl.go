// Copyright 2010 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// WARNING: This file uses //go:linkname to reach unexported vector routines
// of math/big. They are not part of Go's public API; if this package stops
// compiling after a Go upgrade, review the declarations below against the
// current math/big sources. Only the signatures math/big keeps stable for
// go.dev/issue/67401 are used.

package limb

import _ "unsafe" // Required for go:linkname

// addVV computes z = x + y element-wise and returns the carry.
//
//go:linkname addVV math/big.addVV
func addVV(z, x, y []Word) (c Word)

// subVV computes z = x - y element-wise and returns the borrow.
//
//go:linkname subVV math/big.subVV
func subVV(z, x, y []Word) (c Word)

// addVW computes z = x + y where y is a single word, and returns the carry.
//
//go:linkname addVW math/big.addVW
func addVW(z, x []Word, y Word) (c Word)

// subVW computes z = x - y where y is a single word, and returns the borrow.
//
//go:linkname subVW math/big.subVW
func subVW(z, x []Word, y Word) (c Word)

// mulAddVWW computes z = x*y + r element-wise and returns the carry.
//
//go:linkname mulAddVWW math/big.mulAddVWW
func mulAddVWW(z, x []Word, y, r Word) (c Word)

// addMulVVW computes z += x*y element-wise and returns the carry.
//
//go:linkname addMulVVW math/big.addMulVVW
func addMulVVW(z, x []Word, y Word) (c Word)
